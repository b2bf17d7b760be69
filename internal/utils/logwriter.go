package utils

import (
	"strings"

	"github.com/rs/zerolog"
)

type LogWriterCtx struct {
	logger zerolog.Logger
}

// LogWriter adapts a zerolog logger into an io.Writer, used to forward
// subprocess stderr output into the structured log.
func LogWriter(l zerolog.Logger) *LogWriterCtx {
	return &LogWriterCtx{
		logger: l,
	}
}

func (l LogWriterCtx) Write(p []byte) (n int, err error) {
	l.logger.Debug().Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}
