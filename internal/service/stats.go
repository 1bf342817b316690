package service

import (
	"sync"
	"time"
)

// Stats хранит счётчики приёма почты за время работы процесса
type Stats struct {
	mu                 sync.RWMutex // Мьютекс для безопасного доступа
	AcceptedMessages   int64        // Принятых транзакций DATA
	DeliveredCopies    int64        // Сохранённых копий писем
	RejectedRecipients int64        // Отклонённых получателей (квота)
	SkippedRecipients  int64        // Пропущенных получателей (нет ящика)
	OversizeMessages   int64        // Писем сверх лимита размера
	ParseFailures      int64        // Писем, которые не удалось разобрать
	LastAcceptedAt     time.Time    // Время последней принятой транзакции
}

// GlobalStats — глобальная статистика процесса
var GlobalStats = &Stats{}

// IncAccepted увеличивает счётчик принятых транзакций
func (s *Stats) IncAccepted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AcceptedMessages++
	s.LastAcceptedAt = time.Now()
}

// IncDelivered увеличивает счётчик сохранённых копий
func (s *Stats) IncDelivered() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeliveredCopies++
}

// IncRejectedRecipient увеличивает счётчик отклонённых получателей
func (s *Stats) IncRejectedRecipient() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.RejectedRecipients++
}

// IncSkippedRecipient увеличивает счётчик пропущенных получателей
func (s *Stats) IncSkippedRecipient() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SkippedRecipients++
}

// IncOversize увеличивает счётчик слишком больших писем
func (s *Stats) IncOversize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OversizeMessages++
}

// IncParseFailure увеличивает счётчик нечитаемых писем
func (s *Stats) IncParseFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ParseFailures++
}

// GetStats возвращает копию статистики
func (s *Stats) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		AcceptedMessages:   s.AcceptedMessages,
		DeliveredCopies:    s.DeliveredCopies,
		RejectedRecipients: s.RejectedRecipients,
		SkippedRecipients:  s.SkippedRecipients,
		OversizeMessages:   s.OversizeMessages,
		ParseFailures:      s.ParseFailures,
		LastAcceptedAt:     s.LastAcceptedAt,
	}
}
