// Package analytics отправка аналитических событий в Kafka
// Отправка fire-and-forget: потеря события допустима,
// блокировка или падение бизнес-операции - нет
package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const producerName = "cleaning-site"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Producer асинхронный продюсер аналитических событий
// События складываются в буферизованный канал; переполненный буфер
// приводит к отбрасыванию события, а не к блокировке вызывающего
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	log     Logger

	// mu защищает closed и закрытие inbox: Emit после остановки
	// отбрасывает событие вместо записи в закрытый канал
	mu     sync.Mutex
	closed bool
}

// NewProducer создает продюсер аналитических событий
func NewProducer(brokers []string, topic string, bufferSize int, log Logger) *Producer {
	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, bufferSize),
		closeCh: make(chan struct{}),
		log:     log,
	}
}

// Start запускает цикл отправки; останавливается по отмене контекста,
// дослав накопленные сообщения
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		for {
			select {
			case <-ctx.Done():
				p.mu.Lock()
				p.closed = true
				close(p.inbox)
				p.mu.Unlock()
				for m := range p.inbox {
					p.write(m)
				}
				_ = p.w.Close()
				return
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		p.log.Warn("analytics: failed to write event: %v", err)
	}
}

// Emit формирует конверт события и ставит его в очередь отправки
// Никогда не блокируется и не возвращает ошибку вызывающему
func (p *Producer) Emit(eventType, sessionID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		p.log.Warn("analytics: failed to marshal %s payload: %v", eventType, err)
		return
	}

	envelope := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     producerName,
		SessionID:    sessionID,
		Payload:      data,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		p.log.Warn("analytics: failed to marshal %s envelope: %v", eventType, err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(sessionID),
		Value: value,
		Time:  time.Now(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		p.log.Warn("analytics: producer stopped, dropping %s event", eventType)
		return
	}

	select {
	case p.inbox <- msg:
	default:
		// Буфер заполнен - событие отбрасываем, мутации корзины важнее аналитики
		p.log.Warn("analytics: buffer full, dropping %s event", eventType)
	}
}

// WaitClosed блокируется до завершения цикла отправки
func (p *Producer) WaitClosed() {
	<-p.closeCh
}
