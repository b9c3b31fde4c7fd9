package eventbus_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/eventbus"
	"github.com/stretchr/testify/assert"
)

type testEvent struct{ kind string }

func (e testEvent) Type() string { return e.kind }

func newBus() *eventbus.MemoryBus {
	return eventbus.NewMemoryBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	bus := newBus()
	var got []domain.Event
	bus.Subscribe("account.created", func(_ context.Context, e domain.Event) {
		got = append(got, e)
	})

	bus.Publish(context.Background(),
		testEvent{kind: "account.created"},
		testEvent{kind: "card.created"})

	assert.Len(got, 1)
	assert.Equal("account.created", got[0].Type())
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	t.Parallel()
	bus := newBus()
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{kind: "nobody.listens"})
	})
}

func TestMultipleHandlersAllRun(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	bus := newBus()
	count := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe("transfer.completed", func(_ context.Context, _ domain.Event) {
			count++
		})
	}
	bus.Publish(context.Background(), testEvent{kind: "transfer.completed"})
	assert.Equal(3, count)
}

func TestConcurrentPublishSubscribe(t *testing.T) {
	t.Parallel()

	bus := newBus()
	var mu sync.Mutex
	seen := 0
	bus.Subscribe("x", func(_ context.Context, _ domain.Event) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), testEvent{kind: "x"})
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, seen)
}
