package server_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perch-labs/vitelink/internal/config"
	"github.com/perch-labs/vitelink/internal/manifest"
	"github.com/perch-labs/vitelink/internal/metrics"
	"github.com/perch-labs/vitelink/internal/server"
)

const testManifest = `{
  "src/main.ts": {
    "file": "assets/main-4889e940.js",
    "src": "src/main.ts",
    "isEntry": true,
    "css": ["assets/main-b82dbe22.css"]
  }
}`

const testPages = `
pages:
  - route: /
    entry: src/main.ts
    title: Home
`

// testHarness bundles the server under test with its metrics.
type testHarness struct {
	handler http.Handler
	metrics *metrics.Metrics
}

func newHarness(t *testing.T, dev bool) *testHarness {
	return newHarnessWithDevURL(t, dev, "http://localhost:5173")
}

func newHarnessWithDevURL(t *testing.T, dev bool, devURL string) *testHarness {
	t.Helper()

	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write(".vite/manifest.json", testManifest)
	write("assets/main-4889e940.js", "console.log('hi')")
	write("pages.yaml", testPages)

	cfg := &config.AppConfig{
		Port:         0,
		AssetRoot:    root,
		ManifestName: manifest.DefaultManifestName,
		DevServer:    dev,
		DevServerURL: devURL,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	res, err := manifest.New(manifest.Options{
		Root:      cfg.AssetRoot,
		DevServer: cfg.DevServer,
		Logger:    logger,
	})
	require.NoError(t, err)

	pages, err := config.LoadPageRegistry(filepath.Join(root, "pages.yaml"))
	require.NoError(t, err)

	m := metrics.New()
	srv := server.New(cfg, res, pages, m, logger)

	return &testHarness{handler: srv.Handler(), metrics: m}
}

func (h *testHarness) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	h := newHarness(t, false)

	w := h.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListEntries(t *testing.T) {
	h := newHarness(t, false)

	w := h.get("/api/manifest")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Entries []string `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"src/main.ts"}, body.Entries)
}

func TestGetEntry(t *testing.T) {
	h := newHarness(t, false)

	w := h.get("/api/manifest/src/main.ts")
	require.Equal(t, http.StatusOK, w.Code)

	var chunk manifest.Chunk
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chunk))
	assert.Equal(t, "assets/main-4889e940.js", chunk.File)
	assert.True(t, chunk.IsEntry)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ManifestLookups.WithLabelValues(metrics.ResultHit)))
}

func TestGetEntry_NotFound(t *testing.T) {
	h := newHarness(t, false)

	w := h.get("/api/manifest/nope.js")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no manifest entry")

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ManifestLookups.WithLabelValues(metrics.ResultMiss)))
}

func TestGetEntry_DevServerAlwaysMisses(t *testing.T) {
	// The manifest file exists on disk, but dev mode suppresses lookups.
	h := newHarness(t, true)

	w := h.get("/api/manifest/src/main.ts")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ManifestLookups.WithLabelValues(metrics.ResultDev)))
}

func TestPageRendering(t *testing.T) {
	h := newHarness(t, false)

	w := h.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	html := w.Body.String()
	assert.Contains(t, html, "<title>Home</title>")
	assert.Contains(t, html, `<link rel="stylesheet" href="/assets/main-b82dbe22.css">`)
	assert.Contains(t, html, `<script type="module" src="/assets/main-4889e940.js"></script>`)
}

func TestStaticAssets(t *testing.T) {
	h := newHarness(t, false)

	w := h.get("/assets/main-4889e940.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('hi')", w.Body.String())

	assert.Equal(t, http.StatusNotFound, h.get("/assets/missing.js").Code)
}

func TestAssetHandlerSelection(t *testing.T) {
	vite := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "vite:%s", r.URL.Path)
	}))
	defer vite.Close()

	t.Run("dev mode proxies to the vite server", func(t *testing.T) {
		h := newHarnessWithDevURL(t, true, vite.URL)

		w := h.get("/src/main.ts")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "vite:/src/main.ts", w.Body.String())
	})

	t.Run("prod mode serves the build output", func(t *testing.T) {
		h := newHarnessWithDevURL(t, false, vite.URL)

		w := h.get("/assets/main-4889e940.js")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "console.log('hi')", w.Body.String())

		// Paths only the dev server knows are not proxied.
		assert.Equal(t, http.StatusNotFound, h.get("/src/main.ts").Code)
	})
}

func TestDevModeInvalidURLFallsBackToFiles(t *testing.T) {
	// An unparsable dev server URL disables the proxy; assets come from the
	// build output instead.
	h := newHarnessWithDevURL(t, true, "http://[::1]:namedport")

	w := h.get("/assets/main-4889e940.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('hi')", w.Body.String())
}
