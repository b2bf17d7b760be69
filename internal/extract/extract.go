package extract

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"

	"vidserve/internal/utils"
)

// Frame grabs a single frame from the video at inputFilePath, seeked to the
// given second, and returns it as JPEG bytes. The extractor's stderr is
// forwarded to the logger. The process is killed when ctx is done.
func Frame(ctx context.Context, logger zerolog.Logger, ffmpegBinary string, inputFilePath string, seconds int) ([]byte, error) {
	args := []string{
		"-ss", strconv.Itoa(seconds),
		"-i", inputFilePath,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-",
	}

	cmd := exec.CommandContext(ctx, ffmpegBinary, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = utils.LogWriter(logger)

	if err := cmd.Run(); err != nil {
		return nil, err
	}

	return stdout.Bytes(), nil
}
