package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidserve/internal/config"
)

const testChunkSize = 65536

func newTestRouter(t *testing.T) (*chi.Mux, string) {
	t.Helper()

	mediaDir := t.TempDir()

	conf := &config.Server{
		Video: config.Video{
			Dir:          mediaDir,
			ChunkSize:    testChunkSize,
			FFmpegBinary: "ffmpeg",
			MaxExtract:   2,
		},
	}

	router := chi.NewRouter()
	New(conf).Mount(router)

	return router, mediaDir
}

func writeVideo(t *testing.T, mediaDir, name string, size int) []byte {
	t.Helper()

	content := make([]byte, size)
	for i := range content {
		content[i] = byte(i % 256)
	}

	require.NoError(t, os.WriteFile(filepath.Join(mediaDir, name), content, 0644))
	return content
}

func getVideo(router *chi.Mux, name, rangeHeader string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/video/"+name, nil)
	if rangeHeader != "" {
		r.Header.Set("Range", rangeHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestVideoFullBody(t *testing.T) {
	router, mediaDir := newTestRouter(t)
	content := writeVideo(t, mediaDir, "test.mp4", 1000)

	w := getVideo(router, "test.mp4", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
	assert.Equal(t, content, w.Body.Bytes())
}

func TestVideoPartialBody(t *testing.T) {
	router, mediaDir := newTestRouter(t)
	content := writeVideo(t, mediaDir, "test.mp4", 1000)

	t.Run("explicit range", func(t *testing.T) {
		w := getVideo(router, "test.mp4", "bytes=0-99")

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "bytes 0-99/1000", w.Header().Get("Content-Range"))
		assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
		assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
		assert.Equal(t, content[0:100], w.Body.Bytes())
	})

	t.Run("mid file range matches source bytes", func(t *testing.T) {
		w := getVideo(router, "test.mp4", "bytes=250-749")

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "bytes 250-749/1000", w.Header().Get("Content-Range"))
		assert.Equal(t, content[250:750], w.Body.Bytes())
	})

	t.Run("suffix range", func(t *testing.T) {
		w := getVideo(router, "test.mp4", "bytes=-100")

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "bytes 900-999/1000", w.Header().Get("Content-Range"))
		assert.Equal(t, content[900:1000], w.Body.Bytes())
	})

	t.Run("open ended range clamps to resource", func(t *testing.T) {
		w := getVideo(router, "test.mp4", "bytes=950-")

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "bytes 950-999/1000", w.Header().Get("Content-Range"))
		assert.Equal(t, content[950:1000], w.Body.Bytes())
	})
}

func TestVideoNotSatisfiable(t *testing.T) {
	router, mediaDir := newTestRouter(t)
	writeVideo(t, mediaDir, "test.mp4", 1000)

	tests := []struct {
		name        string
		rangeHeader string
	}{
		{"end beyond size", "bytes=0-1005"},
		{"end at size", "bytes=0-1000"},
		{"suffix longer than resource", "bytes=-1500"},
		{"start beyond resource", "bytes=2000-"},
		{"inverted range", "bytes=500-100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getVideo(router, "test.mp4", tt.rangeHeader)
			assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code)
		})
	}
}

func TestVideoNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("without range header", func(t *testing.T) {
		w := getVideo(router, "missing.mp4", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("with range header", func(t *testing.T) {
		w := getVideo(router, "missing.mp4", "bytes=0-99")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVideoDirectoryPath(t *testing.T) {
	router, mediaDir := newTestRouter(t)

	// a directory under the media root must be a lookup failure, not a
	// crashed goroutine
	require.NoError(t, os.Mkdir(filepath.Join(mediaDir, "dir.mp4"), 0755))

	t.Run("full body request", func(t *testing.T) {
		w := getVideo(router, "dir.mp4", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("range request", func(t *testing.T) {
		w := getVideo(router, "dir.mp4", "bytes=0-99")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestVideoLenientFallbacks(t *testing.T) {
	router, mediaDir := newTestRouter(t)
	content := writeVideo(t, mediaDir, "test.mp4", 1000)

	t.Run("malformed unit falls back to full body", func(t *testing.T) {
		w := getVideo(router, "test.mp4", "items=0-99")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, content, w.Body.Bytes())
	})

	t.Run("unparsable tokens fall back to defaults", func(t *testing.T) {
		w := getVideo(router, "test.mp4", "bytes=abc-xyz")

		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "bytes 0-999/1000", w.Header().Get("Content-Range"))
		assert.Equal(t, content, w.Body.Bytes())
	})
}

func TestVideoDeterminism(t *testing.T) {
	router, mediaDir := newTestRouter(t)
	writeVideo(t, mediaDir, "test.mp4", 1000)

	first := getVideo(router, "test.mp4", "bytes=100-299")
	second := getVideo(router, "test.mp4", "bytes=100-299")

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Header(), second.Header())
	assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
}

func TestVideoPathTraversal(t *testing.T) {
	router, mediaDir := newTestRouter(t)

	// a file outside the media root must not be reachable
	secret := filepath.Join(filepath.Dir(mediaDir), "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("secret"), 0644))

	w := getVideo(router, "..%2Fsecret.txt", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
