package analytics

import "context"

// NopProducer заглушка продюсера для выключенной аналитики
type NopProducer struct{}

// NewNopProducer создает заглушку продюсера
func NewNopProducer() *NopProducer {
	return &NopProducer{}
}

// Start ничего не делает
func (p *NopProducer) Start(_ context.Context) {}

// Emit отбрасывает событие
func (p *NopProducer) Emit(_, _ string, _ interface{}) {}

// WaitClosed возвращается сразу
func (p *NopProducer) WaitClosed() {}
