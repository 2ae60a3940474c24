//go:build darwin
// +build darwin

package audio

import (
	"context"
	"os/exec"
)

// playCommand builds the audio playback command (macOS)
func playCommand(ctx context.Context, path string) (*exec.Cmd, error) {
	return exec.CommandContext(ctx, "afplay", path), nil
}

// recordCommand builds the microphone capture command, writing mono
// 16-bit 16kHz WAV to stdout until interrupted.
func recordCommand(ctx context.Context) (*exec.Cmd, error) {
	if path, err := exec.LookPath("sox"); err == nil {
		return exec.CommandContext(ctx, path, "-q", "-d", "-t", "wav", "-r", "16000", "-c", "1", "-b", "16", "-"), nil
	}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return exec.CommandContext(ctx, path, "-loglevel", "quiet", "-f", "avfoundation", "-i", ":0",
			"-ar", "16000", "-ac", "1", "-f", "wav", "-"), nil
	}
	return nil, errNoRecorder
}
