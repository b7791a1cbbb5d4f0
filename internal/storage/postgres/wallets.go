package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
)

const transactionColumns = `id, user_id, order_id, amount, type, status, reference, description, created_at`

func insertEntry(ctx context.Context, tx pgx.Tx, entry *model.Transaction) error {
	const query = `INSERT INTO transactions (user_id, order_id, amount, type, status, reference, description)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	return tx.QueryRow(ctx, query,
		entry.UserID, entry.OrderID, entry.Amount, entry.Type, entry.Status, entry.Reference, entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// --- WalletRepository implementation ---

func (r *walletRepository) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	const query = `SELECT wallet_balance FROM users WHERE id=$1`
	var balance decimal.Decimal
	if err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		return decimal.Zero, notFound(err)
	}
	return balance, nil
}

func (r *walletRepository) Credit(ctx context.Context, entry model.Transaction) (*model.Transaction, error) {
	const (
		lockUser     = `SELECT id FROM users WHERE id=$1 FOR UPDATE`
		creditWallet = `UPDATE users SET wallet_balance = wallet_balance + $2 WHERE id=$1`
	)

	if !entry.Type.Credit() || !entry.Amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if entry.Reference == "" {
		entry.Reference = model.NewReference(entry.Type)
	}
	entry.Status = model.TransactionStatusCompleted

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, lockUser, entry.UserID).Scan(&id); err != nil {
			return notFound(err)
		}
		if err := insertEntry(ctx, tx, &entry); err != nil {
			if isUniqueViolation(err) {
				return domainErrors.ErrAlreadyProcessed
			}
			return err
		}
		_, err := tx.Exec(ctx, creditWallet, entry.UserID, entry.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// --- LedgerRepository implementation ---

func (r *ledgerRepository) ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *ledgerRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions WHERE order_id=$1 ORDER BY id`
	return r.list(ctx, query, orderID)
}

func (r *ledgerRepository) list(ctx context.Context, query string, arg int64) ([]model.Transaction, error) {
	rows, err := r.storage.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.OrderID, &t.Amount, &t.Type, &t.Status, &t.Reference, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
