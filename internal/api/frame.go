package api

import (
	"net/http"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"vidserve/internal/extract"
)

// Frame serves a single still frame of a video as JPEG, extracted at the
// timestamp given by the t query parameter in whole seconds.
func (a *ApiManagerCtx) Frame(w http.ResponseWriter, r *http.Request) {
	logger := log.With().
		Str("module", "frame").
		Str("path", r.URL.Path).
		Logger()

	videoPath, err := a.videoPath(r)
	if err != nil {
		http.Error(w, "400 invalid parameters", http.StatusBadRequest)
		return
	}

	seconds, err := strconv.Atoi(r.URL.Query().Get("t"))
	if err != nil || seconds < 0 {
		http.Error(w, "400 invalid timestamp", http.StatusBadRequest)
		return
	}

	if _, err := os.Stat(videoPath); err != nil {
		logger.Warn().Err(err).Str("video", videoPath).Msg("video not found")
		http.Error(w, "404 video not found", http.StatusNotFound)
		return
	}

	if a.extract != nil {
		if err := a.extract.Acquire(r.Context(), 1); err != nil {
			logger.Warn().Err(err).Msg("request canceled while waiting for extraction slot")
			http.Error(w, "500 unable to extract frame", http.StatusInternalServerError)
			return
		}
		defer a.extract.Release(1)
	}

	frame, err := extract.Frame(r.Context(), logger, a.config.Video.FFmpegBinary, videoPath, seconds)
	if err != nil {
		logger.Error().Err(err).Msg("unable to extract frame")
		http.Error(w, "500 unable to extract frame", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(frame)
}
