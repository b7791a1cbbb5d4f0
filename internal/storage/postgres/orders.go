package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
)

const orderColumns = `id, user_id, beneficiary_number, network, bundle_size, total, status, api_status, provider_reference, refunded, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.BeneficiaryNumber, &o.Network, &o.BundleSize, &o.Total,
		&o.Status, &o.APIStatus, &o.ProviderReference, &o.Refunded, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func (r *orderRepository) Checkout(ctx context.Context, userID int64, policy model.FulfillmentPolicy) ([]model.Order, error) {
	const (
		lockUser    = `SELECT wallet_balance FROM users WHERE id=$1 FOR UPDATE`
		debitWallet = `UPDATE users SET wallet_balance = wallet_balance - $2 WHERE id=$1`
		insertOrder = `INSERT INTO orders (user_id, beneficiary_number, network, bundle_size, total, status, api_status)
                       VALUES ($1, $2, $3, $4, $5, $6, '')
                       RETURNING id, created_at, updated_at`
		clearCart = `DELETE FROM cart_lines WHERE user_id=$1`
	)

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var balance decimal.Decimal
		if err := tx.QueryRow(ctx, lockUser, userID).Scan(&balance); err != nil {
			return notFound(err)
		}

		lines, err := listCartLines(ctx, tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domainErrors.ErrEmptyCart
		}
		total := model.CartTotal(lines)
		if total.GreaterThan(balance) {
			return domainErrors.ErrInsufficientFunds
		}

		if _, err := tx.Exec(ctx, debitWallet, userID, total); err != nil {
			return err
		}

		for _, line := range lines {
			order := model.Order{
				UserID:            userID,
				BeneficiaryNumber: line.BeneficiaryNumber,
				Network:           line.Network,
				BundleSize:        line.BundleSize,
				Total:             line.UnitPrice,
				Status:            policy.InitialStatus(line.Network),
				APIStatus:         model.APIStatusNone,
			}
			err := tx.QueryRow(ctx, insertOrder,
				userID, line.BeneficiaryNumber, line.Network, line.BundleSize, line.UnitPrice, order.Status,
			).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
			if err != nil {
				return err
			}

			orderID := order.ID
			entry := model.Transaction{
				UserID:      userID,
				OrderID:     &orderID,
				Amount:      line.UnitPrice,
				Type:        model.TransactionTypeOrder,
				Status:      model.TransactionStatusCompleted,
				Reference:   model.NewReference(model.TransactionTypeOrder),
				Description: line.Description(),
			}
			if err := insertEntry(ctx, tx, &entry); err != nil {
				return err
			}
			orders = append(orders, order)
		}

		if _, err := tx.Exec(ctx, clearCart, userID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.storage.logger.Debug("checkout committed", slog.Int64("user_id", userID), slog.Int("orders", len(orders)))
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListForReconciliation(ctx context.Context, afterID int64, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + `
                   FROM orders
                   WHERE status IN ('pending', 'processing') AND id > $1
                   ORDER BY id
                   LIMIT $2`
	return r.list(ctx, query, afterID, limit)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ClaimSubmission(ctx context.Context, orderID int64, staleAfter time.Duration) (*model.Order, bool, error) {
	const query = `UPDATE orders SET api_status='in_flight', updated_at=NOW()
                   WHERE id=$1 AND provider_reference IS NULL
                     AND (api_status <> 'in_flight' OR updated_at < NOW() - make_interval(secs => $2))
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID, staleAfter.Seconds()))
	if err == nil {
		return &order, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}
	stored, err := r.GetByID(ctx, orderID)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

func (r *orderRepository) RecordSubmission(ctx context.Context, orderID int64, status model.APIStatus, reference *string) error {
	const query = `UPDATE orders
                   SET api_status=CASE WHEN provider_reference IS NULL THEN $2 ELSE api_status END,
                       provider_reference=COALESCE(provider_reference, $3), updated_at=NOW()
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderID, status, reference)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Transition(ctx context.Context, t model.StatusTransition) (*model.TransitionResult, error) {
	const (
		lockOrder    = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		updateStatus = `UPDATE orders SET status=$2, refunded = refunded OR $3, updated_at=NOW()
                        WHERE id=$1 AND status=$4
                        RETURNING updated_at`
		creditWallet = `UPDATE users SET wallet_balance = wallet_balance + $2 WHERE id=$1`
	)

	if !t.To.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}

	var result *model.TransitionResult
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := scanOrder(tx.QueryRow(ctx, lockOrder, t.OrderID))
		if err != nil {
			return notFound(err)
		}
		result = &model.TransitionResult{Order: order}
		if (t.From != nil && order.Status != *t.From) || order.Status == t.To {
			return nil
		}
		if order.Status == model.OrderStatusCancelled && order.Refunded {
			return domainErrors.ErrInvalidStatus
		}

		refund := t.To == model.OrderStatusCancelled && !order.Refunded
		updatedAt := order.UpdatedAt
		if err := tx.QueryRow(ctx, updateStatus, order.ID, t.To, refund, order.Status).Scan(&updatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		order.Status = t.To
		order.UpdatedAt = updatedAt

		if refund {
			if _, err := tx.Exec(ctx, creditWallet, order.UserID, order.Total); err != nil {
				return err
			}
			description := t.RefundDescription
			if description == "" {
				description = model.RefundDescription(order.ID)
			}
			orderID := order.ID
			entry := model.Transaction{
				UserID:      order.UserID,
				OrderID:     &orderID,
				Amount:      order.Total,
				Type:        model.TransactionTypeRefund,
				Status:      model.TransactionStatusCompleted,
				Reference:   model.NewReference(model.TransactionTypeRefund),
				Description: description,
			}
			if err := insertEntry(ctx, tx, &entry); err != nil {
				return err
			}
			order.Refunded = true
			result.Refund = &entry
		}

		result.Order = order
		result.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
