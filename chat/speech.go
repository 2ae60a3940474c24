package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// silenceThreshold is the average absolute amplitude (on samples
// normalized to [-1, 1]) below which a clip is treated as silence and
// discarded without a transcription call.
const silenceThreshold = 0.01

var (
	// ErrRecording is returned when StartRecording is called while a
	// recording session is already active.
	ErrRecording = errors.New("recording already in progress")
	// ErrNotRecording is returned when StopRecording is called with no
	// active recording session.
	ErrNotRecording = errors.New("no recording in progress")
	// ErrNoSpeech is returned when a recorded clip fails the silence
	// gate.
	ErrNoSpeech = errors.New("no speech detected")
)

// CaptureState is the speech pipeline's position in its lifecycle.
type CaptureState int

const (
	CaptureIdle CaptureState = iota
	CaptureRecording
	CaptureTranscribing
)

// String returns the state name.
func (s CaptureState) String() string {
	switch s {
	case CaptureRecording:
		return "recording"
	case CaptureTranscribing:
		return "transcribing"
	default:
		return "idle"
	}
}

// Clip is a finished recording. Samples are normalized to [-1, 1] and
// feed the silence gate; Encoded is the container (WAV) sent to the
// transcription service.
type Clip struct {
	Samples    []float64
	SampleRate int
	Encoded    []byte
}

// AverageAmplitude returns the mean absolute sample value of the clip.
func (c Clip) AverageAmplitude() float64 {
	if len(c.Samples) == 0 {
		return 0
	}
	var total float64
	for _, v := range c.Samples {
		if v < 0 {
			v = -v
		}
		total += v
	}
	return total / float64(len(c.Samples))
}

// Recorder captures microphone audio. Start fails if the microphone
// cannot be acquired; Stop assembles the buffered audio into a clip.
type Recorder interface {
	Start(ctx context.Context) error
	Stop() (Clip, error)
}

// Transcriber turns a recorded clip into text.
type Transcriber interface {
	TranscribeSpeech(ctx context.Context, clip Clip) (string, error)
}

// CapturePipeline drives the dictation flow:
// idle -> recording -> transcribing -> idle. Only one recording session
// may be active at a time.
type CapturePipeline struct {
	recorder    Recorder
	transcriber Transcriber
	notifier    Notifier
	logger      Logger

	mu    sync.Mutex
	state CaptureState
}

// Logger is the leveled logger the chat package writes to. utils.Logger
// satisfies it.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NewCapturePipeline creates an idle pipeline.
func NewCapturePipeline(recorder Recorder, transcriber Transcriber, notifier Notifier, logger Logger) *CapturePipeline {
	return &CapturePipeline{
		recorder:    recorder,
		transcriber: transcriber,
		notifier:    notifier,
		logger:      logger,
	}
}

// State returns the current pipeline state.
func (p *CapturePipeline) State() CaptureState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// StartRecording acquires the microphone and begins buffering audio.
// Starting while already recording returns ErrRecording; the control
// driving this must be disabled, this is the defensive backstop. A
// microphone failure surfaces a notice and leaves the pipeline idle.
func (p *CapturePipeline) StartRecording(ctx context.Context) error {
	p.mu.Lock()
	if p.state != CaptureIdle {
		p.mu.Unlock()
		return ErrRecording
	}
	p.state = CaptureRecording
	p.mu.Unlock()

	if err := p.recorder.Start(ctx); err != nil {
		p.setState(CaptureIdle)
		p.logger.Error("Failed to start recording: %v", err)
		p.notifier.Notify(Notice{
			Message:  "Error accessing microphone",
			Severity: SeverityError,
			Duration: 2500 * time.Millisecond,
		})
		return err
	}

	p.notifier.Notify(Notice{
		Message:  "Recording started",
		Severity: SeverityInfo,
		Duration: 2500 * time.Millisecond,
	})
	return nil
}

// StopRecording stops the stream, assembles the clip, applies the
// silence gate and transcribes. The trimmed transcript is returned for
// the caller to place in the compose input. Stop always moves through
// transcribing before returning to idle; it never silently drops a
// recording state.
func (p *CapturePipeline) StopRecording(ctx context.Context) (string, error) {
	p.mu.Lock()
	if p.state != CaptureRecording {
		p.mu.Unlock()
		return "", ErrNotRecording
	}
	p.state = CaptureTranscribing
	p.mu.Unlock()

	defer p.setState(CaptureIdle)

	clip, err := p.recorder.Stop()
	if err != nil {
		p.logger.Error("Failed to stop recording: %v", err)
		p.notifier.Notify(Notice{
			Message:  "Recording failed",
			Severity: SeverityError,
			Duration: 2500 * time.Millisecond,
		})
		return "", err
	}

	if clip.AverageAmplitude() < silenceThreshold {
		p.notifier.Notify(Notice{
			Message:  "No speech detected. Please try again.",
			Severity: SeverityInfo,
			Duration: 2500 * time.Millisecond,
		})
		return "", ErrNoSpeech
	}

	text, err := p.transcriber.TranscribeSpeech(ctx, clip)
	if err != nil {
		p.logger.Error("Transcription failed: %v", err)
		p.notifier.Notify(Notice{
			Message:  "Transcription failed",
			Severity: SeverityError,
			Duration: 2500 * time.Millisecond,
		})
		return "", err
	}

	p.notifier.Notify(Notice{
		Message:  "Transcription complete",
		Severity: SeveritySuccess,
		Duration: 2500 * time.Millisecond,
	})
	return strings.TrimSpace(text), nil
}

func (p *CapturePipeline) setState(s CaptureState) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}
