package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/booking-api/internal/core/domain"
)

type collectSink struct {
	mu      sync.Mutex
	ids     []string
	release chan struct{}
}

func (s *collectSink) Report(_ context.Context, r domain.ErrorReport) error {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	s.ids = append(s.ids, r.ID)
	s.mu.Unlock()
	return nil
}

func (s *collectSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func TestDispatcher_DeliversAndDrains(t *testing.T) {
	sink := &collectSink{}
	d := NewDispatcher(2, 16, sink, zerolog.Nop())
	d.Start()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, d.Report(context.Background(), domain.ErrorReport{ID: id}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(ctx))
	assert.Equal(t, 3, sink.count())
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	sink := &collectSink{release: make(chan struct{})}
	d := NewDispatcher(1, 1, sink, zerolog.Nop())

	// Not started: the single buffer slot fills up.
	require.NoError(t, d.Report(context.Background(), domain.ErrorReport{ID: "a"}))
	assert.ErrorIs(t, d.Report(context.Background(), domain.ErrorReport{ID: "b"}), ErrQueueFull)

	close(sink.release)
	d.Start()
	require.NoError(t, d.Shutdown(context.Background()))
	assert.Equal(t, 1, sink.count())
}

func TestDispatcher_RejectsAfterShutdown(t *testing.T) {
	d := NewDispatcher(1, 1, &collectSink{}, zerolog.Nop())
	d.Start()
	require.NoError(t, d.Shutdown(context.Background()))
	require.NoError(t, d.Shutdown(context.Background()))

	assert.ErrorIs(t, d.Report(context.Background(), domain.ErrorReport{ID: "late"}), ErrQueueClosed)
}

func TestDispatcher_ShutdownHonoursDeadline(t *testing.T) {
	sink := &collectSink{release: make(chan struct{})}
	d := NewDispatcher(1, 4, sink, zerolog.Nop())
	d.Start()
	require.NoError(t, d.Report(context.Background(), domain.ErrorReport{ID: "stuck"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Shutdown(ctx), context.DeadlineExceeded)

	close(sink.release)
}
