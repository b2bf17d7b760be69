package api

import (
	"net/http"
	"net/url"
	"path"
	"path/filepath"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"vidserve/internal/config"
)

type ApiManagerCtx struct {
	logger zerolog.Logger
	config *config.Server

	// extract caps concurrent frame extraction processes, nil when the cap
	// is disabled
	extract *semaphore.Weighted
}

func New(config *config.Server) *ApiManagerCtx {
	var extract *semaphore.Weighted
	if config.Video.MaxExtract > 0 {
		extract = semaphore.NewWeighted(config.Video.MaxExtract)
	}

	return &ApiManagerCtx{
		logger:  log.With().Str("module", "api").Logger(),
		config:  config,
		extract: extract,
	}
}

func (a *ApiManagerCtx) Mount(r *chi.Mux) {
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		//nolint
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/video/{video}", a.Video)
	r.Get("/frame/{video}", a.Frame)
}

// videoPath resolves the request's video parameter under the media root.
// The parameter is cleaned as an absolute path first so it cannot escape
// the root.
func (a *ApiManagerCtx) videoPath(r *http.Request) (string, error) {
	video, err := url.PathUnescape(chi.URLParam(r, "video"))
	if err != nil {
		return "", err
	}

	return path.Join(a.config.Video.Dir, filepath.Clean("/"+video)), nil
}
