package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlink/desktop/core"
	"github.com/devlink/desktop/internal/config"
)

func tokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"t1"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewWithoutJournal(t *testing.T) {
	srv := tokenServer(t)

	rt, err := New(&config.Config{APIURL: srv.URL}, nil)
	require.NoError(t, err)
	defer rt.Close()

	assert.Nil(t, rt.Journal)
	_, tracked := rt.Service.(*core.AuthTracker)
	assert.False(t, tracked)

	result, err := rt.Service.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "t1", result.Token())
}

func TestNewWithJournalRecordsAttempts(t *testing.T) {
	srv := tokenServer(t)
	cfg := &config.Config{
		APIURL:  srv.URL,
		Journal: config.JournalConfig{Enabled: true, Path: filepath.Join(t.TempDir(), "journal.db")},
	}

	rt, err := New(cfg, nil)
	require.NoError(t, err)
	defer rt.Close()

	require.NotNil(t, rt.Journal)
	_, err = rt.Service.Register(context.Background(), "u", "a@b.com", "pw")
	require.NoError(t, err)

	attempts, err := rt.Journal.RecentAttempts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "register", attempts[0].Op)
	assert.True(t, attempts[0].Success)
}

func TestNewFailsOnUnusableJournalPath(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		APIURL: "http://localhost:8080",
		// A directory cannot be opened as a database file.
		Journal: config.JournalConfig{Enabled: true, Path: dir},
	}

	_, err := New(cfg, nil)
	assert.Error(t, err)
}
