package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
)

// CartUseCase manages the lines a customer intends to buy.
type CartUseCase struct {
	carts repository.CartRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(carts repository.CartRepository) *CartUseCase {
	return &CartUseCase{carts: carts}
}

// AddLine validates and stores a line. The unit price is captured as given.
func (u *CartUseCase) AddLine(ctx context.Context, userID int64, line model.CartLine) (*model.CartLine, error) {
	line.UserID = userID
	line.BeneficiaryNumber = strings.TrimSpace(line.BeneficiaryNumber)
	line.Network = strings.TrimSpace(line.Network)
	line.BundleSize = strings.TrimSpace(line.BundleSize)

	switch {
	case !line.UnitPrice.IsPositive():
		return nil, domainErrors.ErrInvalidCartLine
	case !line.UnitPrice.Equal(line.UnitPrice.Round(2)):
		// wallet amounts carry two decimal places
		return nil, domainErrors.ErrInvalidCartLine
	case line.BeneficiaryNumber == "", line.Network == "":
		return nil, domainErrors.ErrInvalidCartLine
	}

	return u.carts.AddLine(ctx, line)
}

// Lines returns the user's cart in insertion order.
func (u *CartUseCase) Lines(ctx context.Context, userID int64) ([]model.CartLine, error) {
	return u.carts.ListByUser(ctx, userID)
}

// RemoveLine deletes one of the user's lines.
func (u *CartUseCase) RemoveLine(ctx context.Context, userID, lineID int64) error {
	return u.carts.RemoveLine(ctx, userID, lineID)
}
