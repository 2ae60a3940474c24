package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"linguachat/chat"
)

var errNoRecorder = errors.New("no capture tool found (need arecord, sox or ffmpeg)")

// MicRecorder captures microphone audio through the platform's capture
// tool, buffering WAV output until Stop. It satisfies chat.Recorder.
type MicRecorder struct {
	mu     sync.Mutex
	cmd    *exec.Cmd
	buf    *bytes.Buffer
	waitCh chan error
}

// NewMicRecorder creates a recorder.
func NewMicRecorder() *MicRecorder {
	return &MicRecorder{}
}

// Start acquires the microphone and begins buffering audio chunks. A
// missing capture tool or denied device surfaces as an error here, not
// on Stop, and leaves the recorder ready for another attempt.
func (r *MicRecorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return errors.New("recorder already started")
	}

	cmd, err := recordCommand(ctx)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	cmd.Stdout = buf

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start capture: %w", err)
	}

	waitCh := make(chan error, 1)
	go func() { waitCh <- cmd.Wait() }()

	// The capture tool exits immediately when it cannot open the
	// device; fail fast so permission errors reach the caller instead
	// of surfacing as an empty clip on Stop.
	select {
	case err := <-waitCh:
		if err == nil {
			err = errors.New("capture tool exited")
		}
		return fmt.Errorf("microphone unavailable: %w", err)
	case <-time.After(150 * time.Millisecond):
	}

	r.cmd = cmd
	r.buf = buf
	r.waitCh = waitCh
	return nil
}

// Stop terminates the capture process and assembles the buffered WAV
// output into a clip.
func (r *MicRecorder) Stop() (chat.Clip, error) {
	r.mu.Lock()
	cmd := r.cmd
	buf := r.buf
	waitCh := r.waitCh
	r.cmd = nil
	r.buf = nil
	r.waitCh = nil
	r.mu.Unlock()

	if cmd == nil {
		return chat.Clip{}, errors.New("recorder not started")
	}

	if cmd.Process != nil {
		// Interrupt so the tool flushes its WAV header and trailer.
		_ = cmd.Process.Signal(interruptSignal)
	}
	<-waitCh

	encoded := buf.Bytes()
	samples, rate, err := DecodeWAV(encoded)
	if err != nil {
		return chat.Clip{}, fmt.Errorf("failed to decode recording: %w", err)
	}

	return chat.Clip{
		Samples:    samples,
		SampleRate: rate,
		Encoded:    encoded,
	}, nil
}
