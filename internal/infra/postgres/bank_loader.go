package postgres

import (
	"context"
	"errors"
	"fmt"

	"cert-quiz-service/internal/bank"
	"cert-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader loads raw JSONL banks from Postgres. The stored text goes
// through the same strict line-oriented parser as file banks, so a bad
// row in the database surfaces with the same line-level diagnostics.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, bankID string) ([]domain.Question, error) {
	var raw string
	err := l.pool.QueryRow(ctx, `SELECT raw_jsonl FROM question_banks WHERE id=$1`, bankID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBankNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	questions, err := bank.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("bank %s: %w", bankID, err)
	}
	return questions, nil
}
