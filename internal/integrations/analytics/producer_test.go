package analytics

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger собирает warn-сообщения для проверок
type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Warn(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

func (l *recordingLogger) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warnings...)
}

func TestEmit_AfterShutdownDropsEvent(t *testing.T) {
	log := &recordingLogger{}
	p := NewProducer([]string{"localhost:9092"}, "events", 8, log)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()
	p.WaitClosed()

	// Запрос, доживший до остановки продюсера, не должен ронять процесс
	require.NotPanics(t, func() {
		p.Emit(EventCartItemAdded, "sess-1", CartItemPayload{ServiceID: 1, Quantity: 2})
	})

	warnings := log.all()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "producer stopped")
}

func TestEmit_DropsWhenBufferFull(t *testing.T) {
	log := &recordingLogger{}
	p := NewProducer([]string{"localhost:9092"}, "events", 1, log)

	// Цикл отправки не запущен - второе событие не помещается в буфер
	p.Emit(EventCartItemAdded, "sess-1", CartItemPayload{ServiceID: 1, Quantity: 1})
	p.Emit(EventCartItemRemoved, "sess-1", CartItemPayload{ServiceID: 1, Quantity: 1})

	warnings := log.all()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "buffer full")
	assert.Contains(t, warnings[0], EventCartItemRemoved)
}
