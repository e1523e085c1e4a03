package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alovak/rapidpay/ledger/models"
	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

// PGStorage is the Postgres durable backend. Schema management lives outside
// this service; the rapidpay.cards table is assumed to exist with a unique
// constraint on card_number, which backstops the store's own duplicate check.
type PGStorage struct {
	db *sql.DB
}

func NewPGStorage(db *sql.DB) *PGStorage {
	return &PGStorage{db: db}
}

func (p *PGStorage) LoadCards(ctx context.Context) ([]models.Card, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT card_id, owner_id, card_number, balance, last_fee FROM rapidpay.cards
	`)
	if err != nil {
		return nil, fmt.Errorf("scanning cards table: %w", err)
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var card models.Card
		if err := rows.Scan(&card.ID, &card.OwnerID, &card.CardNumber, &card.Balance, &card.LastFee); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (p *PGStorage) InsertCard(ctx context.Context, card models.Card) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO rapidpay.cards(card_id, owner_id, card_number, balance, last_fee)
		VALUES ($1,$2,$3,$4,$5)
	`, card.ID, card.OwnerID, card.CardNumber, card.Balance, card.LastFee)
	if isUniqueViolation(err) {
		return ErrDuplicateCard
	}
	return err
}

func (p *PGStorage) UpdateCard(ctx context.Context, card models.Card) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE rapidpay.cards SET balance=$2, last_fee=$3 WHERE card_number=$1
	`, card.CardNumber, card.Balance, card.LastFee)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PGStorage) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pe *pq.Error
	if errors.As(err, &pe) && pe.Code == "23505" {
		return true
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && pgerr.Code == "23505" {
		return true
	}
	return false
}
