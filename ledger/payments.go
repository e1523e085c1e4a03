package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/alovak/rapidpay/internal/cardnum"
	"github.com/alovak/rapidpay/ledger/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"
)

// PaymentService debits cards. Validation and mutation for one card happen
// under a per-card mutex, so two concurrent payments against the same card
// cannot interleave their funds check and debit; payments on different cards
// never contend.
type PaymentService struct {
	store  *CardStore
	fees   FeeQuoter
	logger *slog.Logger
	locks  sync.Map // card number -> *sync.Mutex
}

func NewPaymentService(store *CardStore, fees FeeQuoter, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		store:  store,
		fees:   fees,
		logger: logger.With(slog.String("component", "payments")),
	}
}

// Pay validates and settles a payment. Ordinary rejections come back as the
// result's Failure or SecureFailure variant; a non-nil error means the
// durable write failed and the operation aborted.
//
// The fee is computed exactly once and reused for both the funds check and
// the charge, so a multiplier rotation between validation and mutation cannot
// charge a fee different from the one that justified the check.
func (p *PaymentService) Pay(ctx context.Context, req models.PaymentRequest, requesterID string) (Result[models.PaymentOutcome], error) {
	masked := cardnum.Mask(req.CardNumber)

	p.logger.Info("processing payment",
		slog.String("card", masked),
		slog.String("amount", req.Amount.String()),
		slog.String("requester", requesterID))

	lock := p.cardLock(req.CardNumber)
	lock.Lock()
	defer lock.Unlock()

	if !p.store.Exists(req.CardNumber) {
		return p.rejected(SecureFailure[models.PaymentOutcome](
			fmt.Sprintf("Card %s does not exist.", masked)), masked), nil
	}

	card, err := p.store.Get(req.CardNumber)
	if err != nil {
		return Result[models.PaymentOutcome]{}, fmt.Errorf("fetching card: %w", err)
	}

	if card.OwnerID != requesterID {
		return p.rejected(SecureFailure[models.PaymentOutcome](
			fmt.Sprintf("Card %s does not belong to user.", masked)), masked), nil
	}

	fee := p.fees.GetFee(card.LastFee)
	required := req.Amount.Add(fee)

	if card.Balance.LessThan(required) {
		return p.rejected(Failure[models.PaymentOutcome]("Insufficient funds."), masked), nil
	}

	card.Balance = card.Balance.Sub(required)
	card.LastFee = decimal.NewNullDecimal(fee)

	if err := p.store.Update(ctx, card); err != nil {
		return Result[models.PaymentOutcome]{}, fmt.Errorf("updating card: %w", err)
	}

	p.logger.Info("payment processed",
		slog.String("card", masked),
		slog.String("fee", fee.String()),
		slog.String("total", required.String()))

	return Success(models.PaymentOutcome{
		CardNumber:  card.CardNumber,
		Amount:      req.Amount,
		Fee:         fee,
		TotalAmount: required,
		Balance:     card.Balance,
	}), nil
}

func (p *PaymentService) rejected(res Result[models.PaymentOutcome], masked string) Result[models.PaymentOutcome] {
	p.logger.Warn("payment rejected",
		slog.String("card", masked),
		slog.String("reason", res.Message()))
	return res
}

func (p *PaymentService) cardLock(cardNumber string) *sync.Mutex {
	lock, _ := p.locks.LoadOrStore(cardNumber, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
