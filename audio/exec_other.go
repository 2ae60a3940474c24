//go:build !windows && !darwin
// +build !windows,!darwin

package audio

import (
	"context"
	"os/exec"
	"path/filepath"
)

// playCommand builds the audio playback command (Linux and other Unix)
func playCommand(ctx context.Context, path string) (*exec.Cmd, error) {
	player, err := lookFirst("mpg123", "ffplay", "paplay", "aplay")
	if err != nil {
		return nil, err
	}
	if filepath.Base(player) == "ffplay" {
		return exec.CommandContext(ctx, player, "-nodisp", "-autoexit", "-loglevel", "quiet", path), nil
	}
	return exec.CommandContext(ctx, player, "-q", path), nil
}

// recordCommand builds the microphone capture command, writing mono
// 16-bit 16kHz WAV to stdout until interrupted.
func recordCommand(ctx context.Context) (*exec.Cmd, error) {
	if path, err := exec.LookPath("arecord"); err == nil {
		return exec.CommandContext(ctx, path, "-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "wav", "-"), nil
	}
	if path, err := exec.LookPath("sox"); err == nil {
		return exec.CommandContext(ctx, path, "-q", "-d", "-t", "wav", "-r", "16000", "-c", "1", "-b", "16", "-"), nil
	}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return exec.CommandContext(ctx, path, "-loglevel", "quiet", "-f", "pulse", "-i", "default",
			"-ar", "16000", "-ac", "1", "-f", "wav", "-"), nil
	}
	return nil, errNoRecorder
}
