package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
)

const (
	foreignKeyViolation = "23503"
	cartColumns         = `id, user_id, product_ref, variant_ref, beneficiary_number, network, bundle_size, unit_price, created_at`
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *cartRepository) AddLine(ctx context.Context, line model.CartLine) (*model.CartLine, error) {
	const query = `INSERT INTO cart_lines (user_id, product_ref, variant_ref, beneficiary_number, network, bundle_size, unit_price)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		line.UserID, line.ProductRef, line.VariantRef, line.BeneficiaryNumber, line.Network, line.BundleSize, line.UnitPrice,
	).Scan(&line.ID, &line.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	return listCartLines(ctx, r.storage.pool, userID)
}

func (r *cartRepository) RemoveLine(ctx context.Context, userID, lineID int64) error {
	const query = `DELETE FROM cart_lines WHERE id=$1 AND user_id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, lineID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func listCartLines(ctx context.Context, q querier, userID int64) ([]model.CartLine, error) {
	const query = `SELECT ` + cartColumns + ` FROM cart_lines WHERE user_id=$1 ORDER BY id`
	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductRef, &l.VariantRef, &l.BeneficiaryNumber, &l.Network, &l.BundleSize, &l.UnitPrice, &l.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
