package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
)

// Store keeps every repository in process memory behind a single mutex, so
// each operation is atomic the same way a database transaction would be.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	lastUserID  int64
	lastLineID  int64
	lastOrderID int64
	lastEntryID int64

	users  map[int64]*model.User
	logins map[string]int64
	carts  map[int64][]model.CartLine
	orders map[int64]*model.Order
	ledger []model.Transaction
	refs   map[string]struct{}
	push   *bool
}

type userRepository struct{ store *Store }

type cartRepository struct{ store *Store }

type orderRepository struct{ store *Store }

type walletRepository struct{ store *Store }

type ledgerRepository struct{ store *Store }

type settingsRepository struct{ store *Store }

// New creates an empty store.
func New() *Store {
	return &Store{
		now:    time.Now,
		users:  make(map[int64]*model.User),
		logins: make(map[string]int64),
		carts:  make(map[int64][]model.CartLine),
		orders: make(map[int64]*model.Order),
		refs:   make(map[string]struct{}),
	}
}

var _ repository.Factory = (*Store)(nil)

func (s *Store) Users() repository.UserRepository { return &userRepository{store: s} }
func (s *Store) Carts() repository.CartRepository { return &cartRepository{store: s} }
func (s *Store) Orders() repository.OrderRepository { return &orderRepository{store: s} }
func (s *Store) Wallets() repository.WalletRepository { return &walletRepository{store: s} }
func (s *Store) Ledger() repository.LedgerRepository { return &ledgerRepository{store: s} }
func (s *Store) Settings() repository.SettingsRepository { return &settingsRepository{store: s} }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) appendEntry(entry model.Transaction) model.Transaction {
	s.lastEntryID++
	entry.ID = s.lastEntryID
	entry.CreatedAt = s.now()
	if entry.Reference == "" {
		entry.Reference = model.NewReference(entry.Type)
	}
	if entry.Status == "" {
		entry.Status = model.TransactionStatusCompleted
	}
	s.refs[entry.Reference] = struct{}{}
	s.ledger = append(s.ledger, entry)
	return copyEntry(entry)
}

func copyOrder(o *model.Order) model.Order {
	out := *o
	if o.ProviderReference != nil {
		ref := *o.ProviderReference
		out.ProviderReference = &ref
	}
	return out
}

func copyEntry(e model.Transaction) model.Transaction {
	if e.OrderID != nil {
		id := *e.OrderID
		e.OrderID = &id
	}
	return e
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash, phone string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.logins[login]; ok {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.lastUserID++
	u := &model.User{
		ID:            s.lastUserID,
		Login:         login,
		PasswordHash:  passwordHash,
		Phone:         phone,
		WalletBalance: decimal.Zero,
		CreatedAt:     s.now(),
	}
	s.users[u.ID] = u
	s.logins[login] = u.ID
	out := *u
	return &out, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.logins[login]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *s.users[id]
	return &out, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *u
	return &out, nil
}

// --- CartRepository implementation ---

func (r *cartRepository) AddLine(ctx context.Context, line model.CartLine) (*model.CartLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[line.UserID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	s.lastLineID++
	line.ID = s.lastLineID
	line.CreatedAt = s.now()
	s.carts[line.UserID] = append(s.carts[line.UserID], line)
	return &line, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *cartRepository) RemoveLine(ctx context.Context, userID, lineID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i, line := range lines {
		if line.ID == lineID {
			s.carts[userID] = append(lines[:i:i], lines[i+1:]...)
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// --- OrderRepository implementation ---

func (r *orderRepository) Checkout(ctx context.Context, userID int64, policy model.FulfillmentPolicy) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	lines := s.carts[userID]
	if len(lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}
	total := model.CartTotal(lines)
	if total.GreaterThan(user.WalletBalance) {
		return nil, domainErrors.ErrInsufficientFunds
	}

	user.WalletBalance = user.WalletBalance.Sub(total)
	now := s.now()
	orders := make([]model.Order, 0, len(lines))
	for _, line := range lines {
		s.lastOrderID++
		order := &model.Order{
			ID:                s.lastOrderID,
			UserID:            userID,
			BeneficiaryNumber: line.BeneficiaryNumber,
			Network:           line.Network,
			BundleSize:        line.BundleSize,
			Total:             line.UnitPrice,
			Status:            policy.InitialStatus(line.Network),
			APIStatus:         model.APIStatusNone,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		s.orders[order.ID] = order

		orderID := order.ID
		s.appendEntry(model.Transaction{
			UserID:      userID,
			OrderID:     &orderID,
			Amount:      line.UnitPrice,
			Type:        model.TransactionTypeOrder,
			Status:      model.TransactionStatusCompleted,
			Description: line.Description(),
		})
		orders = append(orders, copyOrder(order))
	}
	delete(s.carts, userID)
	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := copyOrder(order)
	return &out, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []model.Order
	for _, id := range s.sortedOrderIDs() {
		if order := s.orders[id]; order.UserID == userID {
			result = append(result, copyOrder(order))
		}
	}
	// newest first
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

func (r *orderRepository) ListForReconciliation(ctx context.Context, afterID int64, limit int) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []model.Order
	for _, id := range s.sortedOrderIDs() {
		if limit > 0 && len(result) >= limit {
			break
		}
		order := s.orders[id]
		if id <= afterID || order.Status.Terminal() {
			continue
		}
		result = append(result, copyOrder(order))
	}
	return result, nil
}

func (r *orderRepository) ClaimSubmission(ctx context.Context, orderID int64, staleAfter time.Duration) (*model.Order, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, false, domainErrors.ErrNotFound
	}
	now := s.now()
	held := order.APIStatus == model.APIStatusInFlight && now.Sub(order.UpdatedAt) <= staleAfter
	if order.HasProviderReference() || held {
		out := copyOrder(order)
		return &out, false, nil
	}
	order.APIStatus = model.APIStatusInFlight
	order.UpdatedAt = now
	out := copyOrder(order)
	return &out, true, nil
}

func (r *orderRepository) RecordSubmission(ctx context.Context, orderID int64, status model.APIStatus, reference *string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if !order.HasProviderReference() {
		order.APIStatus = status
		if reference != nil {
			ref := *reference
			order.ProviderReference = &ref
		}
	}
	order.UpdatedAt = s.now()
	return nil
}

func (r *orderRepository) Transition(ctx context.Context, t model.StatusTransition) (*model.TransitionResult, error) {
	if !t.To.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[t.OrderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	result := &model.TransitionResult{Order: copyOrder(order)}
	if (t.From != nil && order.Status != *t.From) || order.Status == t.To {
		return result, nil
	}
	if order.Status == model.OrderStatusCancelled && order.Refunded {
		return nil, domainErrors.ErrInvalidStatus
	}

	refund := t.To == model.OrderStatusCancelled && !order.Refunded
	user, ok := s.users[order.UserID]
	if refund && !ok {
		return nil, domainErrors.ErrNotFound
	}

	order.Status = t.To
	order.UpdatedAt = s.now()
	if refund {
		description := t.RefundDescription
		if description == "" {
			description = model.RefundDescription(order.ID)
		}
		user.WalletBalance = user.WalletBalance.Add(order.Total)
		orderID := order.ID
		entry := s.appendEntry(model.Transaction{
			UserID:      order.UserID,
			OrderID:     &orderID,
			Amount:      order.Total,
			Type:        model.TransactionTypeRefund,
			Status:      model.TransactionStatusCompleted,
			Description: description,
		})
		order.Refunded = true
		result.Refund = &entry
	}
	result.Order = copyOrder(order)
	result.Applied = true
	return result, nil
}

func (s *Store) sortedOrderIDs() []int64 {
	ids := make([]int64, 0, len(s.orders))
	for id := range s.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// --- WalletRepository implementation ---

func (r *walletRepository) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return decimal.Zero, domainErrors.ErrNotFound
	}
	return user.WalletBalance, nil
}

func (r *walletRepository) Credit(ctx context.Context, entry model.Transaction) (*model.Transaction, error) {
	if !entry.Type.Credit() || !entry.Amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[entry.UserID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if _, used := s.refs[entry.Reference]; used && entry.Reference != "" {
		return nil, domainErrors.ErrAlreadyProcessed
	}
	user.WalletBalance = user.WalletBalance.Add(entry.Amount)
	entry.Status = model.TransactionStatusCompleted
	stored := s.appendEntry(entry)
	return &stored, nil
}

// --- LedgerRepository implementation ---

func (r *ledgerRepository) ListByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []model.Transaction
	for i := len(s.ledger) - 1; i >= 0; i-- {
		if s.ledger[i].UserID == userID {
			result = append(result, copyEntry(s.ledger[i]))
		}
	}
	return result, nil
}

func (r *ledgerRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.Transaction, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []model.Transaction
	for _, entry := range s.ledger {
		if entry.OrderID != nil && *entry.OrderID == orderID {
			result = append(result, copyEntry(entry))
		}
	}
	return result, nil
}

// --- SettingsRepository implementation ---

func (r *settingsRepository) PushEnabled(ctx context.Context) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.push == nil {
		return false, domainErrors.ErrNotFound
	}
	return *s.push, nil
}

func (r *settingsRepository) SetPushEnabled(ctx context.Context, enabled bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.push = &enabled
	return nil
}
