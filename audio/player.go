package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"linguachat/utils"
)

// ExecPlayer plays synthesized audio through the platform's command
// line player. Playback runs in a goroutine; the done callback fires
// exactly once when the audio ends or fails, which is what releases
// the playback token upstream.
type ExecPlayer struct {
	logger *utils.Logger
}

// NewExecPlayer creates a player.
func NewExecPlayer(logger *utils.Logger) *ExecPlayer {
	return &ExecPlayer{logger: logger}
}

// Play writes the MP3 bytes to a temporary file and starts the
// platform player on it. Play returns once the player process has
// started.
func (p *ExecPlayer) Play(ctx context.Context, mp3 []byte, done func(error)) error {
	f, err := os.CreateTemp("", "linguachat-*.mp3")
	if err != nil {
		return fmt.Errorf("failed to create temp audio file: %w", err)
	}
	path := f.Name()

	if _, err := f.Write(mp3); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	cmd, err := playCommand(ctx, path)
	if err != nil {
		os.Remove(path)
		return err
	}

	if err := cmd.Start(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to start audio player: %w", err)
	}

	utils.SafeGo(p.logger, "audio playback", func() {
		err := cmd.Wait()
		os.Remove(path)
		done(err)
	})

	return nil
}

// lookFirst returns the first command on PATH from the candidates.
func lookFirst(candidates ...string) (string, error) {
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no audio player found (tried %v)", candidates)
}
