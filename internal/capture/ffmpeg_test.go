package capture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFrame_ToolMissing(t *testing.T) {
	g := &Grabber{bin: "definitely-not-an-installed-binary"}

	_, err := g.Frame(context.Background(), "https://example.com/stream.m3u8", "", 5*time.Second)
	if !errors.Is(err, ErrToolMissing) {
		t.Errorf("got %v, want ErrToolMissing", err)
	}
}

func TestFrame_NoFrameProduced(t *testing.T) {
	// "true" exists everywhere, accepts our arguments, exits zero, and
	// writes nothing, which must be classified as a missing frame.
	g := &Grabber{bin: "true"}
	out := filepath.Join(t.TempDir(), "frame.jpg")

	_, err := g.Frame(context.Background(), "https://example.com/stream.m3u8", out, 5*time.Second)
	if !errors.Is(err, ErrNoFrame) {
		t.Errorf("got %v, want ErrNoFrame", err)
	}
}

func TestFrame_Timeout(t *testing.T) {
	// A stand-in binary that ignores the ffmpeg-style arguments and runs
	// until killed, so the context deadline fires first. ("yes" is not
	// usable here: GNU yes treats the leading -y as an invalid option
	// and exits immediately.)
	bin := filepath.Join(t.TempDir(), "hang.sh")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\nexec sleep 60\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	g := &Grabber{bin: bin}

	_, err := g.Frame(context.Background(), "https://example.com/stream.m3u8", "", 50*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("got %v, want ErrTimeout", err)
	}
}
