package api

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"vidserve/internal/stream"
)

// Video serves a video file with byte-range support. The flow is linear:
// lookup, range parse, validation, read, response. Every failure maps to a
// response, a broken read after lookup is a 500, never a crash.
func (a *ApiManagerCtx) Video(w http.ResponseWriter, r *http.Request) {
	logger := log.With().
		Str("module", "video").
		Str("path", r.URL.Path).
		Logger()

	videoPath, err := a.videoPath(r)
	if err != nil {
		http.Error(w, "400 invalid parameters", http.StatusBadRequest)
		return
	}

	src, err := stream.Open(videoPath)
	if err != nil {
		logger.Warn().Err(err).Str("video", videoPath).Msg("unable to open video")
		http.Error(w, "404 video not found", http.StatusNotFound)
		return
	}
	defer src.Close()

	size := src.Size()
	candidate := stream.ParseRange(r.Header.Get("Range"), size, a.config.Video.ChunkSize)

	switch stream.Decide(candidate, size) {
	case stream.NotSatisfiable:
		http.Error(w, "416 range not satisfiable", http.StatusRequestedRangeNotSatisfiable)

	case stream.FullBody:
		body, err := src.ReadAll()
		if err != nil {
			logger.Error().Err(err).Msg("unable to read video")
			http.Error(w, "500 unable to read video", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Accept-Ranges", "bytes")
		_, _ = w.Write(body)

	case stream.PartialBody:
		body, err := src.ReadRange(*candidate)
		if err != nil {
			logger.Error().Err(err).Msg("unable to read video range")
			http.Error(w, "500 unable to read video", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", candidate.Start, candidate.End, size))
		w.Header().Set("Accept-Ranges", "bytes")
		w.Header().Set("Content-Type", "video/mp4")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write(body)
	}
}
