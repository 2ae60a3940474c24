//go:build windows
// +build windows

package audio

import (
	"context"
	"fmt"
	"os/exec"
)

// playCommand builds the audio playback command (Windows)
func playCommand(ctx context.Context, path string) (*exec.Cmd, error) {
	script := fmt.Sprintf(
		"Add-Type -AssemblyName presentationCore; $p = New-Object System.Windows.Media.MediaPlayer; $p.Open('%s'); $p.Play(); Start-Sleep 1; while ($p.Position -lt $p.NaturalDuration.TimeSpan) { Start-Sleep -Milliseconds 200 }",
		path,
	)
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script), nil
}

// recordCommand builds the microphone capture command, writing mono
// 16-bit 16kHz WAV to stdout until interrupted.
func recordCommand(ctx context.Context) (*exec.Cmd, error) {
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return exec.CommandContext(ctx, path, "-loglevel", "quiet", "-f", "dshow", "-i", "audio=default",
			"-ar", "16000", "-ac", "1", "-f", "wav", "-"), nil
	}
	return nil, errNoRecorder
}
