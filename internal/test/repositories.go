package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash, phone string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Phone: phone}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SubmissionCall stores information about RecordSubmission invocations.
type SubmissionCall struct {
	OrderID   int64
	Status    model.APIStatus
	Reference *string
}

// OrderRepositoryStub allows tests to customize behaviour. Unset functions
// return ErrNotFound or empty results.
type OrderRepositoryStub struct {
	CheckoutFn         func(context.Context, int64, model.FulfillmentPolicy) ([]model.Order, error)
	GetByIDFn          func(context.Context, int64) (*model.Order, error)
	ListByUserFn       func(context.Context, int64) ([]model.Order, error)
	ListFn             func(context.Context, int64, int) ([]model.Order, error)
	ClaimFn            func(context.Context, int64, time.Duration) (*model.Order, bool, error)
	RecordSubmissionFn func(context.Context, int64, model.APIStatus, *string) error
	TransitionFn       func(context.Context, model.StatusTransition) (*model.TransitionResult, error)

	mu          sync.Mutex
	Submissions []SubmissionCall
	Transitions []model.StatusTransition
}

// Checkout delegates to override.
func (s *OrderRepositoryStub) Checkout(ctx context.Context, userID int64, policy model.FulfillmentPolicy) ([]model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, policy)
	}
	return nil, domainErrors.ErrEmptyCart
}

// GetByID delegates to override.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser delegates to override.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

// ListForReconciliation delegates to override.
func (s *OrderRepositoryStub) ListForReconciliation(ctx context.Context, afterID int64, limit int) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, afterID, limit)
	}
	return nil, nil
}

// ClaimSubmission delegates to override. By default every claim succeeds
// for a bare order carrying only the id.
func (s *OrderRepositoryStub) ClaimSubmission(ctx context.Context, orderID int64, staleAfter time.Duration) (*model.Order, bool, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, orderID, staleAfter)
	}
	return &model.Order{ID: orderID, APIStatus: model.APIStatusInFlight}, true, nil
}

// RecordSubmission records invocations.
func (s *OrderRepositoryStub) RecordSubmission(ctx context.Context, orderID int64, status model.APIStatus, reference *string) error {
	s.mu.Lock()
	s.Submissions = append(s.Submissions, SubmissionCall{OrderID: orderID, Status: status, Reference: reference})
	s.mu.Unlock()
	if s.RecordSubmissionFn != nil {
		return s.RecordSubmissionFn(ctx, orderID, status, reference)
	}
	return nil
}

// Transition records invocations and delegates to override.
func (s *OrderRepositoryStub) Transition(ctx context.Context, t model.StatusTransition) (*model.TransitionResult, error) {
	s.mu.Lock()
	s.Transitions = append(s.Transitions, t)
	s.mu.Unlock()
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, t)
	}
	return nil, domainErrors.ErrNotFound
}

// SettingsRepositoryStub keeps the push toggle in a field.
type SettingsRepositoryStub struct {
	Push *bool
	Err  error
}

// PushEnabled returns the stored value or ErrNotFound when unset.
func (s *SettingsRepositoryStub) PushEnabled(ctx context.Context) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	if s.Push == nil {
		return false, domainErrors.ErrNotFound
	}
	return *s.Push, nil
}

// SetPushEnabled stores the value.
func (s *SettingsRepositoryStub) SetPushEnabled(ctx context.Context, enabled bool) error {
	if s.Err != nil {
		return s.Err
	}
	s.Push = &enabled
	return nil
}
