package ledger

import (
	"context"
	"sync"

	"github.com/alovak/rapidpay/ledger/models"
)

// MemStorage is an in-process durable backend stand-in for tests and local
// runs without Postgres. Disabled at runtime unless explicitly allowed, see
// App.Start.
type MemStorage struct {
	mu    sync.Mutex
	cards map[string]models.Card
}

func NewMemStorage() *MemStorage {
	return &MemStorage{cards: make(map[string]models.Card)}
}

func (m *MemStorage) LoadCards(ctx context.Context) ([]models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cards := make([]models.Card, 0, len(m.cards))
	for _, card := range m.cards {
		cards = append(cards, card)
	}
	return cards, nil
}

func (m *MemStorage) InsertCard(ctx context.Context, card models.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[card.CardNumber]; ok {
		return ErrDuplicateCard
	}
	m.cards[card.CardNumber] = card
	return nil
}

func (m *MemStorage) UpdateCard(ctx context.Context, card models.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[card.CardNumber]; !ok {
		return ErrNotFound
	}
	m.cards[card.CardNumber] = card
	return nil
}

func (m *MemStorage) Ping(ctx context.Context) error {
	return nil
}
