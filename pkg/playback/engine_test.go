package playback

import (
	"context"
	"testing"
	"time"

	"github.com/tockworks/go-tock/pkg/audioio"
	"github.com/tockworks/go-tock/pkg/clips"
)

// recordTap records every hook invocation.
type recordTap struct {
	starts  int
	ends    int
	samples []int16
}

func (r *recordTap) OnPlaybackStart() { r.starts++ }
func (r *recordTap) OnSample(s int16) { r.samples = append(r.samples, s) }
func (r *recordTap) OnPlaybackEnd()   { r.ends++ }

func testSinkCfg() audioio.Config {
	return audioio.Config{
		Backend:        audioio.BackendMock,
		SampleRate:     22050,
		Channels:       1,
		BufferDuration: 20 * time.Millisecond,
	}
}

func startedSink(t *testing.T, opts ...audioio.MockSinkOption) *audioio.MockSink {
	t.Helper()
	sink := audioio.NewMockSink(testSinkCfg(), nil, opts...)
	if err := sink.Start(context.Background()); err != nil {
		t.Fatalf("sink start: %v", err)
	}
	return sink
}

func rampSamples(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i%200 - 100)
	}
	return out
}

func TestEngine_PlayCompleted(t *testing.T) {
	store := clips.NewMemStore()
	want := rampSamples(2000)
	if err := store.PutPCM("h07", want, 22050); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	sink := startedSink(t, audioio.WithCapture())
	tap := &recordTap{}
	e := NewEngine(store, sink, tap, nil)

	if res := e.Play(context.Background(), "h07"); res != Completed {
		t.Fatalf("Play = %v, want completed", res)
	}

	if tap.starts != 1 || tap.ends != 1 {
		t.Errorf("tap bracketing: %d starts, %d ends, want 1/1", tap.starts, tap.ends)
	}
	if len(tap.samples) != len(want) {
		t.Fatalf("tap saw %d samples, want %d", len(tap.samples), len(want))
	}
	for i, s := range tap.samples {
		if s != want[i] {
			t.Fatalf("tap sample %d = %d, want %d", i, s, want[i])
		}
	}

	sunk := sink.Samples()
	if len(sunk) != len(want) {
		t.Errorf("sink received %d samples, want %d", len(sunk), len(want))
	}
}

func TestEngine_OpenFailed(t *testing.T) {
	store := clips.NewMemStore()
	sink := startedSink(t)
	tap := &recordTap{}
	e := NewEngine(store, sink, tap, nil)

	if res := e.Play(context.Background(), "m30"); res != OpenFailed {
		t.Fatalf("Play = %v, want open_failed", res)
	}

	// Hooks still bracket the failed call, and no samples leaked out.
	if tap.starts != 1 || tap.ends != 1 {
		t.Errorf("tap bracketing on failure: %d starts, %d ends, want 1/1", tap.starts, tap.ends)
	}
	if len(tap.samples) != 0 {
		t.Errorf("tap saw %d samples from a failed open", len(tap.samples))
	}
}

func TestEngine_FormatInvalid(t *testing.T) {
	store := clips.NewMemStore()
	store.Put("am", []byte("RIFFgarbage-not-a-wav-file"))

	sink := startedSink(t)
	tap := &recordTap{}
	e := NewEngine(store, sink, tap, nil)

	if res := e.Play(context.Background(), "am"); res != FormatInvalid {
		t.Fatalf("Play = %v, want format_invalid", res)
	}
	if tap.starts != 1 || tap.ends != 1 {
		t.Errorf("tap bracketing on bad header: %d starts, %d ends, want 1/1", tap.starts, tap.ends)
	}
}

func TestEngine_FormatMismatchRejected(t *testing.T) {
	store := clips.NewMemStore()
	// Valid WAV, wrong sample rate for the sink.
	if err := store.PutPCM("pm", rampSamples(100), 8000); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	sink := startedSink(t)
	e := NewEngine(store, sink, nil, nil)

	if res := e.Play(context.Background(), "pm"); res != FormatInvalid {
		t.Fatalf("Play = %v, want format_invalid for rate mismatch", res)
	}
}

// A bad clip mid-sequence must not poison the next play call.
func TestEngine_FailureDoesNotStickAcrossCalls(t *testing.T) {
	store := clips.NewMemStore()
	store.Put("oh", []byte("junk"))
	if err := store.PutPCM("m5", rampSamples(500), 22050); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	sink := startedSink(t)
	tap := &recordTap{}
	e := NewEngine(store, sink, tap, nil)

	if res := e.Play(context.Background(), "oh"); res != FormatInvalid {
		t.Fatalf("first Play = %v, want format_invalid", res)
	}
	if res := e.Play(context.Background(), "m5"); res != Completed {
		t.Fatalf("second Play = %v, want completed", res)
	}
	if tap.starts != 2 || tap.ends != 2 {
		t.Errorf("tap bracketing across calls: %d starts, %d ends, want 2/2", tap.starts, tap.ends)
	}
}

func TestResult_String(t *testing.T) {
	if Completed.String() != "completed" ||
		OpenFailed.String() != "open_failed" ||
		FormatInvalid.String() != "format_invalid" {
		t.Error("unexpected result names")
	}
}
