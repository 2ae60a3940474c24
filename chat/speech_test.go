package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRecorder scripts the microphone.
type stubRecorder struct {
	startErr error
	stopErr  error
	clip     Clip
	started  int
	stopped  int
}

func (r *stubRecorder) Start(context.Context) error {
	r.started++
	return r.startErr
}

func (r *stubRecorder) Stop() (Clip, error) {
	r.stopped++
	return r.clip, r.stopErr
}

type stubTranscriber struct {
	text  string
	err   error
	calls int
}

func (s *stubTranscriber) TranscribeSpeech(context.Context, Clip) (string, error) {
	s.calls++
	return s.text, s.err
}

func loudClip() Clip {
	samples := make([]float64, 1600)
	for i := range samples {
		samples[i] = 0.3
	}
	return Clip{Samples: samples, SampleRate: 16000, Encoded: []byte("wav")}
}

func quietClip() Clip {
	samples := make([]float64, 1600)
	for i := range samples {
		samples[i] = 0.003
	}
	return Clip{Samples: samples, SampleRate: 16000, Encoded: []byte("wav")}
}

func TestCaptureHappyPath(t *testing.T) {
	rec := &stubRecorder{clip: loudClip()}
	tr := &stubTranscriber{text: "  Hola, ¿cómo estás?  "}
	notices := &noticeRecorder{}
	p := NewCapturePipeline(rec, tr, notices, nopLogger{})

	require.Equal(t, CaptureIdle, p.State())
	require.NoError(t, p.StartRecording(context.Background()))
	require.Equal(t, CaptureRecording, p.State())

	text, err := p.StopRecording(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hola, ¿cómo estás?", text, "transcript is trimmed")
	assert.Equal(t, CaptureIdle, p.State())
	assert.Contains(t, notices.messages(), "Recording started")
	assert.Contains(t, notices.messages(), "Transcription complete")
}

func TestCaptureRejectsDoubleStart(t *testing.T) {
	p := NewCapturePipeline(&stubRecorder{clip: loudClip()}, &stubTranscriber{}, &noticeRecorder{}, nopLogger{})

	require.NoError(t, p.StartRecording(context.Background()))
	assert.ErrorIs(t, p.StartRecording(context.Background()), ErrRecording)
}

func TestCaptureStopWithoutStart(t *testing.T) {
	p := NewCapturePipeline(&stubRecorder{}, &stubTranscriber{}, &noticeRecorder{}, nopLogger{})

	_, err := p.StopRecording(context.Background())
	assert.ErrorIs(t, err, ErrNotRecording)
}

func TestCaptureMicrophoneFailure(t *testing.T) {
	rec := &stubRecorder{startErr: errors.New("device busy")}
	notices := &noticeRecorder{}
	p := NewCapturePipeline(rec, &stubTranscriber{}, notices, nopLogger{})

	err := p.StartRecording(context.Background())
	require.Error(t, err)
	assert.Equal(t, CaptureIdle, p.State(), "a failed start leaves the pipeline idle")
	assert.Contains(t, notices.messages(), "Error accessing microphone")
}

func TestCaptureSilenceGate(t *testing.T) {
	rec := &stubRecorder{clip: quietClip()}
	tr := &stubTranscriber{}
	notices := &noticeRecorder{}
	p := NewCapturePipeline(rec, tr, notices, nopLogger{})

	require.NoError(t, p.StartRecording(context.Background()))
	_, err := p.StopRecording(context.Background())

	assert.ErrorIs(t, err, ErrNoSpeech)
	assert.Zero(t, tr.calls, "silent clips never reach the transcription service")
	assert.Contains(t, notices.messages(), "No speech detected. Please try again.")
	assert.Equal(t, CaptureIdle, p.State())
}

func TestCaptureTranscriptionFailure(t *testing.T) {
	rec := &stubRecorder{clip: loudClip()}
	tr := &stubTranscriber{err: errors.New("api down")}
	notices := &noticeRecorder{}
	p := NewCapturePipeline(rec, tr, notices, nopLogger{})

	require.NoError(t, p.StartRecording(context.Background()))
	_, err := p.StopRecording(context.Background())

	require.Error(t, err)
	assert.Equal(t, CaptureIdle, p.State())
	assert.Contains(t, notices.messages(), "Transcription failed")

	// The pipeline is reusable after a failure.
	require.NoError(t, p.StartRecording(context.Background()))
}

func TestClipAverageAmplitude(t *testing.T) {
	assert.Zero(t, Clip{}.AverageAmplitude())

	c := Clip{Samples: []float64{0.5, -0.5, 0.25, -0.25}}
	assert.InDelta(t, 0.375, c.AverageAmplitude(), 1e-9)
}

func TestCaptureStateString(t *testing.T) {
	assert.Equal(t, "idle", CaptureIdle.String())
	assert.Equal(t, "recording", CaptureRecording.String())
	assert.Equal(t, "transcribing", CaptureTranscribing.String())
}
