package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
)

// WalletUseCase exposes the wallet balance, its ledger and top-ups.
type WalletUseCase struct {
	wallets  repository.WalletRepository
	ledger   repository.LedgerRepository
	verifier PaymentVerifier
}

// NewWalletUseCase constructs WalletUseCase.
func NewWalletUseCase(wallets repository.WalletRepository, ledger repository.LedgerRepository, verifier PaymentVerifier) *WalletUseCase {
	return &WalletUseCase{wallets: wallets, ledger: ledger, verifier: verifier}
}

// Balance returns the current wallet balance.
func (u *WalletUseCase) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return u.wallets.Balance(ctx, userID)
}

// Transactions returns ledger entries newest first.
func (u *WalletUseCase) Transactions(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return u.ledger.ListByUser(ctx, userID)
}

// TopUp credits a verified payment. The payment reference becomes the ledger
// reference, so crediting it twice yields ErrAlreadyProcessed.
func (u *WalletUseCase) TopUp(ctx context.Context, userID int64, reference string) (*model.Transaction, error) {
	if reference == "" {
		return nil, domainErrors.ErrPaymentNotVerified
	}

	verification, err := u.verifier.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}
	if verification == nil || !verification.Success {
		return nil, domainErrors.ErrPaymentNotVerified
	}
	if !verification.Amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}

	return u.wallets.Credit(ctx, model.Transaction{
		UserID:      userID,
		Amount:      verification.Amount,
		Type:        model.TransactionTypeTopUp,
		Status:      model.TransactionStatusCompleted,
		Reference:   reference,
		Description: "Wallet top-up",
	})
}
