package ledger

import (
	"encoding/json"
	"net/http"

	"github.com/alovak/rapidpay/internal/middleware"
	"github.com/alovak/rapidpay/ledger/models"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// API is the HTTP boundary over the ledger. It does request-shape validation
// only; everything behind the shape check is the services' business.
type API struct {
	cards    *CardService
	payments *PaymentService
	logger   *slog.Logger
}

func NewAPI(cards *CardService, payments *PaymentService, logger *slog.Logger) *API {
	return &API{
		cards:    cards,
		payments: payments,
		logger:   logger.With(slog.String("component", "api")),
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSubject)

		r.Route("/cards", func(r chi.Router) {
			r.Post("/", a.createCard)
			r.Get("/{cardNumber}/balance", a.getBalance)
		})
		r.Post("/payments", a.pay)
	})
}

func (a *API) createCard(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCard
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !req.InitialBalance.IsPositive() {
		http.Error(w, "Initial balance must be greater than 0", http.StatusBadRequest)
		return
	}

	result, err := a.cards.CreateCard(r.Context(), req, middleware.Subject(r.Context()))
	if err != nil {
		a.logger.Error("create card failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	a.writeResult(w, http.StatusCreated, result.Status(), result.Message(), result.Payload())
}

func (a *API) getBalance(w http.ResponseWriter, r *http.Request) {
	cardNumber := chi.URLParam(r, "cardNumber")

	result := a.cards.GetBalance(cardNumber, middleware.Subject(r.Context()))

	a.writeResult(w, http.StatusOK, result.Status(), result.Message(), result.Payload())
}

func (a *API) pay(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CardNumber == "" {
		http.Error(w, "Card number is required", http.StatusBadRequest)
		return
	}
	if !req.Amount.IsPositive() {
		http.Error(w, "Amount must be greater than 0", http.StatusBadRequest)
		return
	}

	result, err := a.payments.Pay(r.Context(), req, middleware.Subject(r.Context()))
	if err != nil {
		a.logger.Error("payment failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	a.writeResult(w, http.StatusOK, result.Status(), result.Message(), result.Payload())
}

// writeResult applies the transport mapping: success responses carry the
// payload, ordinary failures disclose their message with a 400, and secure
// failures answer with an opaque 500. The secure detail is already in the
// service logs; it must not leak here.
func (a *API) writeResult(w http.ResponseWriter, successCode int, status ResultStatus, message string, payload any) {
	switch status {
	case StatusSecureFailure:
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	case StatusFailure:
		http.Error(w, message, http.StatusBadRequest)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successCode)
		json.NewEncoder(w).Encode(payload)
	}
}
