package cmd

import (
	"context"
	"net/http"
	"testing"
	"time"

	"marketplace/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAPIServer_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- APIServer(ctx, http.NotFoundHandler(), "0", zap.NewNop())
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestCleanSessions_StopsOnCancel(t *testing.T) {
	sessions := new(repository.MockSessionRepository)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	finished := make(chan struct{})
	go func() {
		CleanSessions(ctx, sessions, zap.NewNop())
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		require.FailNow(t, "cleaner kept running after cancel")
	}
	sessions.AssertNotCalled(t, "CleanExpiredSessions")
}
