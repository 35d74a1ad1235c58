package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Structured capture failures. The CLI boundary maps these onto
// success:false results instead of crashing.
var (
	// ErrToolMissing indicates ffmpeg is not installed or not on PATH.
	ErrToolMissing = errors.New("ffmpeg not found")

	// ErrTimeout indicates the stream did not yield a frame in time.
	ErrTimeout = errors.New("frame capture timed out")

	// ErrNoFrame indicates ffmpeg ran but produced no usable frame
	// (dead stream, bad URL, codec failure).
	ErrNoFrame = errors.New("no frame captured from stream")
)

// Grabber captures single still frames from live streams by shelling out
// to ffmpeg. The zero value is not usable; call NewGrabber.
type Grabber struct {
	// bin is the ffmpeg binary name or path. Overridable for tests.
	bin string
}

// NewGrabber returns a Grabber using the ffmpeg binary found on PATH.
func NewGrabber() *Grabber {
	return &Grabber{bin: "ffmpeg"}
}

// Frame captures one still frame from an HLS (or any ffmpeg-readable)
// stream URL and writes it to outputPath as JPEG. An empty outputPath
// writes to a uniquely named file under the system temp directory.
// Returns the path of the captured frame.
//
// The grab is bounded by timeout. Failures are classified: ErrToolMissing
// when ffmpeg is absent, ErrTimeout when the deadline passes, ErrNoFrame
// when ffmpeg exits without producing a frame.
func (g *Grabber) Frame(ctx context.Context, streamURL, outputPath string, timeout time.Duration) (string, error) {
	if outputPath == "" {
		outputPath = filepath.Join(os.TempDir(), "crowdscan-"+uuid.NewString()+".jpg")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// -frames:v 1 grabs the first decodable video frame; -q:v 2 keeps
	// JPEG quality high enough for small-person detection.
	cmd := exec.CommandContext(ctx, g.bin,
		"-y",
		"-i", streamURL,
		"-frames:v", "1",
		"-update", "1",
		"-q:v", "2",
		outputPath,
	)

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s: %s", ErrTimeout, timeout, streamURL)
		}
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: install it with your package manager", ErrToolMissing)
		}
		return "", fmt.Errorf("%w: %v", ErrNoFrame, err)
	}

	if info, err := os.Stat(outputPath); err != nil || info.Size() == 0 {
		return "", fmt.Errorf("%w: ffmpeg exited cleanly but wrote nothing", ErrNoFrame)
	}

	return outputPath, nil
}
