package repository

import (
	"context"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// CartRepository stores cart lines until checkout consumes them.
type CartRepository interface {
	AddLine(ctx context.Context, line model.CartLine) (*model.CartLine, error)
	ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error)
	RemoveLine(ctx context.Context, userID, lineID int64) error
}
