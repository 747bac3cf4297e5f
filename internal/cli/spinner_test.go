package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer guards a buffer written by the spinner goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var out lockedBuffer
	s := newSpinnerTo(context.Background(), &out, "applying")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.SetMessage("applied %d", 3)
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "applying") || !strings.Contains(got, "applied 3") {
		t.Errorf("spinner output = %q", got)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after Stop without parent cancellation")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var out lockedBuffer
	s := newSpinnerTo(ctx, &out, "waiting")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var out lockedBuffer
	s := newSpinnerTo(context.Background(), &out, "stopping")
	s.Start()
	s.Stop()
	s.Stop()
}
