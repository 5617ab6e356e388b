// Package regions holds the marketplace region table and resolves the region
// of an incoming request.
package regions

import "strings"

type Region struct {
	ID      int
	Slug    string
	Name    string
	MCCs    []int
	Default bool
}

var (
	RestOfWorld = Region{ID: 1, Slug: "restofworld", Name: "Rest of the World", Default: true}
	US          = Region{ID: 2, Slug: "us", Name: "United States", MCCs: []int{310, 311, 312, 313, 314, 315, 316}}
	BR          = Region{ID: 7, Slug: "br", Name: "Brazil", MCCs: []int{724}}
	ES          = Region{ID: 8, Slug: "es", Name: "Spain", MCCs: []int{214}}
	CO          = Region{ID: 9, Slug: "co", Name: "Colombia", MCCs: []int{732}}
	VE          = Region{ID: 10, Slug: "ve", Name: "Venezuela", MCCs: []int{734}}
	PL          = Region{ID: 11, Slug: "pl", Name: "Poland", MCCs: []int{260}}
	MX          = Region{ID: 12, Slug: "mx", Name: "Mexico", MCCs: []int{334}}
	HU          = Region{ID: 13, Slug: "hu", Name: "Hungary", MCCs: []int{216}}
	DE          = Region{ID: 14, Slug: "de", Name: "Germany", MCCs: []int{262}}
	ME          = Region{ID: 15, Slug: "me", Name: "Montenegro", MCCs: []int{297}}
	RS          = Region{ID: 16, Slug: "rs", Name: "Serbia", MCCs: []int{220}}
	GR          = Region{ID: 17, Slug: "gr", Name: "Greece", MCCs: []int{202}}
	PE          = Region{ID: 18, Slug: "pe", Name: "Peru", MCCs: []int{716}}
	UY          = Region{ID: 19, Slug: "uy", Name: "Uruguay", MCCs: []int{748}}
	AR          = Region{ID: 20, Slug: "ar", Name: "Argentina", MCCs: []int{722}}
	CN          = Region{ID: 21, Slug: "cn", Name: "China", MCCs: []int{460}}
	IT          = Region{ID: 22, Slug: "it", Name: "Italy", MCCs: []int{222}}
	CL          = Region{ID: 23, Slug: "cl", Name: "Chile", MCCs: []int{730}}
	SV          = Region{ID: 24, Slug: "sv", Name: "El Salvador", MCCs: []int{706}}
	GT          = Region{ID: 25, Slug: "gt", Name: "Guatemala", MCCs: []int{704}}
	EC          = Region{ID: 26, Slug: "ec", Name: "Ecuador", MCCs: []int{740}}
	CR          = Region{ID: 27, Slug: "cr", Name: "Costa Rica", MCCs: []int{712}}
	PA          = Region{ID: 28, Slug: "pa", Name: "Panama", MCCs: []int{714}}
	NI          = Region{ID: 29, Slug: "ni", Name: "Nicaragua", MCCs: []int{710}}
	BD          = Region{ID: 31, Slug: "bd", Name: "Bangladesh", MCCs: []int{470}}
	IN          = Region{ID: 32, Slug: "in", Name: "India", MCCs: []int{404, 405, 406}}
	GB          = Region{ID: 4, Slug: "uk", Name: "United Kingdom", MCCs: []int{234, 235}}
)

var all = []Region{
	RestOfWorld, US, GB, BR, ES, CO, VE, PL, MX, HU, DE, ME, RS, GR, PE, UY,
	AR, CN, IT, CL, SV, GT, EC, CR, PA, NI, BD, IN,
}

var (
	bySlug = make(map[string]Region, len(all))
	byMCC  = make(map[int]Region)
)

func init() {
	for _, r := range all {
		bySlug[r.Slug] = r
		for _, mcc := range r.MCCs {
			byMCC[mcc] = r
		}
	}
}

// All returns every known region.
func All() []Region {
	out := make([]Region, len(all))
	copy(out, all)
	return out
}

// BySlug looks up a region by slug, case-insensitively.
func BySlug(slug string) (Region, bool) {
	r, ok := bySlug[strings.ToLower(strings.TrimSpace(slug))]
	return r, ok
}

// ByCountryCode maps an ISO 3166 alpha-2 code to a region. GeoIP reports the
// United Kingdom as "gb" while the region slug is "uk".
func ByCountryCode(code string) (Region, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "gb" {
		code = "uk"
	}
	return BySlug(code)
}

// ByMCC maps a mobile country code to a region.
func ByMCC(mcc int) (Region, bool) {
	r, ok := byMCC[mcc]
	return r, ok
}
