package templates

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type region struct{ Slug string }

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}

func TestRender_FrameEscapesJSON(t *testing.T) {
	var buf bytes.Buffer
	origins := `["app://marketplace.firefox.com","https://marketplace.firefox.com"]`
	err := Render(&buf, IframeInstall, map[string]string{
		"AllowedOrigins": origins,
		"ScriptURL":      "/media/js/iframe-install.js",
	})
	require.NoError(t, err)

	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	body := findBody(doc)
	require.NotNil(t, body)

	got, ok := attr(body, "data-allowed-origins")
	require.True(t, ok)
	assert.Equal(t, origins, got)
}

func TestRender_IndexRegionOptional(t *testing.T) {
	data := map[string]any{
		"Lang":      "en-US",
		"Repo":      "fireplace",
		"ScriptURL": "/media/fireplace/js/include.js?b=dev",
		"OpenGraph": map[string]string{"Title": "Firefox Marketplace"},
		"Region":    (*region)(nil),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Index, data))
	assert.NotContains(t, buf.String(), "data-region")

	data["Region"] = &region{Slug: "testoland"}
	buf.Reset()
	require.NoError(t, Render(&buf, Index, data))
	assert.Contains(t, buf.String(), `data-region="testoland"`)
}

func TestRenderManifest(t *testing.T) {
	var buf bytes.Buffer
	err := RenderManifest(&buf, map[string]any{
		"BuildID":   "p00p",
		"Assets":    []string{"/media/fireplace/js/include.js?b=p00p"},
		"ImageURLs": []string{"/media/fireplace/img/icons/eggs/h1.gif"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "CACHE MANIFEST\n"))
	assert.Contains(t, out, "# BUILD_ID p00p\n")
	assert.Contains(t, out, "/media/fireplace/img/icons/eggs/h1.gif\n")
	assert.Contains(t, out, "/media/fireplace/js/include.js?b=p00p\n")
	assert.True(t, strings.HasSuffix(out, "NETWORK:\n*\n"))
}
