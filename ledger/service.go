package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/alovak/rapidpay/internal/cardnum"
	"github.com/alovak/rapidpay/ledger/models"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// CardService handles card creation and balance lookups.
type CardService struct {
	store  *CardStore
	logger *slog.Logger
}

func NewCardService(store *CardStore, logger *slog.Logger) *CardService {
	return &CardService{
		store:  store,
		logger: logger.With(slog.String("component", "cards")),
	}
}

// CreateCard allocates a fresh card number and persists the card. The
// allocator's existence check and the store insert are separate steps, so a
// concurrent creation can still grab the same number first; the store's
// insert-if-absent reports that as ErrDuplicateCard and we retry with a new
// number.
func (s *CardService) CreateCard(ctx context.Context, req models.CreateCard, ownerID string) (Result[models.CreatedCard], error) {
	s.logger.Info("creating card", slog.String("owner", ownerID))

	exists := func(number string) (bool, error) { return s.store.Exists(number), nil }

	for attempt := 0; attempt < 5; attempt++ {
		number, err := cardnum.GenerateUnique(10, exists)
		if err != nil {
			return Result[models.CreatedCard]{}, fmt.Errorf("generating card number: %w", err)
		}

		card := models.Card{
			ID:         uuid.New().String(),
			OwnerID:    ownerID,
			CardNumber: number,
			Balance:    req.InitialBalance,
		}

		err = s.store.Create(ctx, card)
		if err == nil {
			s.logger.Info("card created",
				slog.String("owner", ownerID),
				slog.String("card", cardnum.Mask(number)))

			return Success(models.CreatedCard{
				CardNumber:     card.CardNumber,
				InitialBalance: card.Balance,
			}), nil
		}
		if errors.Is(err, ErrDuplicateCard) {
			continue
		}
		return Result[models.CreatedCard]{}, fmt.Errorf("creating card: %w", err)
	}

	return Result[models.CreatedCard]{}, fmt.Errorf("could not create unique card after retries")
}

// GetBalance returns the card's current balance to its owner. The format
// check is purely syntactic and disclosable; existence and ownership
// violations are secure failures whose detail stays in the logs.
func (s *CardService) GetBalance(cardNumber, requesterID string) Result[models.Balance] {
	if !cardnum.IsValid(cardNumber) {
		return s.rejected(Failure[models.Balance]("Card number is not valid."), requesterID)
	}

	masked := cardnum.Mask(cardNumber)

	if !s.store.Exists(cardNumber) {
		return s.rejected(SecureFailure[models.Balance](
			fmt.Sprintf("Card %s does not exist.", masked)), requesterID)
	}

	card, err := s.store.Get(cardNumber)
	if err != nil {
		// Card vanished between Exists and Get; cards are never deleted, so
		// treat it the same as absent.
		return s.rejected(SecureFailure[models.Balance](
			fmt.Sprintf("Card %s does not exist.", masked)), requesterID)
	}

	if card.OwnerID != requesterID {
		return s.rejected(SecureFailure[models.Balance](
			fmt.Sprintf("Card %s does not belong to user.", masked)), requesterID)
	}

	return Success(models.Balance{
		CardNumber: cardNumber,
		Balance:    card.Balance,
	})
}

func (s *CardService) rejected(res Result[models.Balance], requesterID string) Result[models.Balance] {
	s.logger.Warn("balance request rejected",
		slog.String("requester", requesterID),
		slog.String("reason", res.Message()))
	return res
}
