package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/alovak/rapidpay/internal/cardnum"
	"github.com/alovak/rapidpay/ledger/models"
	"golang.org/x/exp/slog"
)

var (
	ErrNotFound      = fmt.Errorf("not found")
	ErrDuplicateCard = fmt.Errorf("card number exists")
)

// Storage is the durable backend behind the CardStore. It is read once at
// startup and written through afterwards; implementations are not expected to
// be safe for concurrent writes, the store serializes them.
type Storage interface {
	LoadCards(ctx context.Context) ([]models.Card, error)
	InsertCard(ctx context.Context, card models.Card) error
	UpdateCard(ctx context.Context, card models.Card) error
	Ping(ctx context.Context) error
}

// CardStore is the single source of truth for card reads. The in-memory
// index is populated by one full scan of durable storage at construction and
// is the sole read path for the process lifetime; every Create/Update writes
// through to storage but storage is never read again. Reads hit the index
// without taking any lock, writes serialize on a single mutex in front of the
// durable backend.
type CardStore struct {
	index   sync.Map // card number -> models.Card
	writeMu sync.Mutex
	storage Storage
	logger  *slog.Logger
}

// NewCardStore loads all cards from storage into the in-memory index.
func NewCardStore(ctx context.Context, storage Storage, logger *slog.Logger) (*CardStore, error) {
	s := &CardStore{
		storage: storage,
		logger:  logger.With(slog.String("component", "card_store")),
	}

	cards, err := storage.LoadCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading cards: %w", err)
	}
	for _, card := range cards {
		s.index.Store(card.CardNumber, card)
	}

	s.logger.Info("card index loaded", slog.Int("cards", len(cards)))

	return s, nil
}

// Create inserts the card if its number is absent and persists it. The index
// insert is a single insert-if-absent, so two concurrent creates for the same
// number cannot both pass a separate existence check: exactly one wins and
// the other gets ErrDuplicateCard.
//
// If the durable write fails after the index insert, the index is ahead of
// storage. That divergence is accepted and is reconciled only by the full
// reload of a process restart; the error is surfaced to the caller, never
// swallowed.
func (s *CardStore) Create(ctx context.Context, card models.Card) error {
	if _, loaded := s.index.LoadOrStore(card.CardNumber, card); loaded {
		return fmt.Errorf("card %s: %w", cardnum.Mask(card.CardNumber), ErrDuplicateCard)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.storage.InsertCard(ctx, card); err != nil {
		s.logger.Error("card index ahead of durable storage", "err", err,
			slog.String("card", cardnum.Mask(card.CardNumber)))
		return fmt.Errorf("persisting card %s: %w", cardnum.Mask(card.CardNumber), err)
	}

	return nil
}

// Get returns the card from the in-memory index. The returned card is a
// copy; mutating it does not affect the store until Update is called.
func (s *CardStore) Get(cardNumber string) (models.Card, error) {
	v, ok := s.index.Load(cardNumber)
	if !ok {
		return models.Card{}, ErrNotFound
	}
	return v.(models.Card), nil
}

// Update replaces the indexed record and persists the new state. Readers are
// never blocked: the index swap is atomic and only the durable write holds
// the write mutex.
func (s *CardStore) Update(ctx context.Context, card models.Card) error {
	if _, ok := s.index.Load(card.CardNumber); !ok {
		return fmt.Errorf("card %s: %w", cardnum.Mask(card.CardNumber), ErrNotFound)
	}
	s.index.Store(card.CardNumber, card)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.storage.UpdateCard(ctx, card); err != nil {
		s.logger.Error("card index ahead of durable storage", "err", err,
			slog.String("card", cardnum.Mask(card.CardNumber)))
		return fmt.Errorf("persisting card %s: %w", cardnum.Mask(card.CardNumber), err)
	}

	return nil
}

// Exists reports whether the card number is present in the in-memory index.
func (s *CardStore) Exists(cardNumber string) bool {
	_, ok := s.index.Load(cardNumber)
	return ok
}

// Ping reports durable-backend readiness.
func (s *CardStore) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}
