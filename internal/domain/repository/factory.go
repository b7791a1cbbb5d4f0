package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Carts() CartRepository
	Orders() OrderRepository
	Wallets() WalletRepository
	Ledger() LedgerRepository
	Settings() SettingsRepository

	Ping(ctx context.Context) error
	Close()
}
