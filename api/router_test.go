package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouterForTest(t *testing.T) *API {
	t.Helper()

	gin.SetMode(gin.TestMode)

	tmp := t.TempDir()
	dsn := filepath.Join(tmp, "router.db")
	// An empty file is a valid sqlite database and keeps the docker
	// mount guard happy
	require.NoError(t, os.WriteFile(dsn, nil, 0o644))

	viper.Set("database.driver", "sqlite")
	viper.Set("database.dsn", dsn)
	viper.Set("database.reset_on_start", false)
	viper.Set("storage.root", filepath.Join(tmp, "uploads"))
	viper.Set("upload.max_size", int64(10<<20))
	viper.Set("sweep.enabled", false)
	viper.Set("host.cors_origins", []string{"http://localhost:5173"})

	a, err := NewRouter()
	require.NoError(t, err)

	return a
}

// Listings are cached briefly, so every write has to flush the cache
// or deletes would keep showing up and uploads would stay invisible
// until the TTL runs out.
func TestRouterListingFreshAfterWrites(t *testing.T) {
	a := newRouterForTest(t)

	code, body := doJSON(t, a, uploadRequest(t, "Inventory", "2025-01-15", "shelf.jpg", jpegBytes(t, 100, 100)))
	require.Equal(t, http.StatusOK, code)
	id := int(body["id"].(float64))

	listURL := "/api/photos?category=Inventory&date=2025-01-15"

	code, body = doJSON(t, a, httptest.NewRequest(http.MethodGet, listURL, nil))
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total"])

	code, _ = doJSON(t, a, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/photos/%d", id), nil))
	require.Equal(t, http.StatusOK, code)

	// The page cached before the delete must not be served again
	code, body = doJSON(t, a, httptest.NewRequest(http.MethodGet, listURL, nil))
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, body["total"])

	// And a fresh upload shows up immediately too
	code, _ = doJSON(t, a, uploadRequest(t, "Inventory", "2025-01-15", "again.jpg", jpegBytes(t, 100, 100)))
	require.Equal(t, http.StatusOK, code)

	code, body = doJSON(t, a, httptest.NewRequest(http.MethodGet, listURL, nil))
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["total"])
}
