package test

import (
	"context"
	"strconv"
	"sync"

	"github.com/polkiloo/bundlemart/internal/domain/model"
)

// ProviderStub plays the aggregator. Statuses maps provider references to the
// raw status FetchStatus reports.
type ProviderStub struct {
	SubmitFn func(context.Context, model.Order) (string, error)
	FetchFn  func(context.Context, string) (string, error)

	mu       sync.Mutex
	Statuses map[string]string
	Orders   []model.Order
	Fetched  []string
}

// Submit records the order and returns "TX-<order id>" unless overridden.
func (s *ProviderStub) Submit(ctx context.Context, order model.Order) (string, error) {
	s.mu.Lock()
	s.Orders = append(s.Orders, order)
	s.mu.Unlock()
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, order)
	}
	return "TX-" + strconv.FormatInt(order.ID, 10), nil
}

// FetchStatus returns the configured status for reference.
func (s *ProviderStub) FetchStatus(ctx context.Context, reference string) (string, error) {
	s.mu.Lock()
	s.Fetched = append(s.Fetched, reference)
	status := s.Statuses[reference]
	s.mu.Unlock()
	if s.FetchFn != nil {
		return s.FetchFn(ctx, reference)
	}
	return status, nil
}

// SetStatus changes what FetchStatus reports for reference.
func (s *ProviderStub) SetStatus(reference, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Statuses == nil {
		s.Statuses = make(map[string]string)
	}
	s.Statuses[reference] = status
}

// SubmitCount returns the number of Submit calls.
func (s *ProviderStub) SubmitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Orders)
}

// SentMessage is a recorded notification.
type SentMessage struct {
	Phone   string
	Message string
}

// NotifierStub records notifications. Fail makes every delivery report failure.
type NotifierStub struct {
	Fail bool

	mu   sync.Mutex
	Sent []SentMessage
}

// Send records the message.
func (s *NotifierStub) Send(ctx context.Context, phone, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentMessage{Phone: phone, Message: message})
	return !s.Fail
}

// Messages returns a copy of the recorded notifications.
func (s *NotifierStub) Messages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentMessage(nil), s.Sent...)
}

// Close is a no-op.
func (s *NotifierStub) Close() error { return nil }

// PaymentVerifierStub answers verification requests from a table of references.
type PaymentVerifierStub struct {
	Payments map[string]model.PaymentVerification
	Err      error
}

// Verify returns the configured verdict or an unsuccessful one.
func (s PaymentVerifierStub) Verify(ctx context.Context, reference string) (*model.PaymentVerification, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if v, ok := s.Payments[reference]; ok {
		v.Reference = reference
		return &v, nil
	}
	return &model.PaymentVerification{Reference: reference}, nil
}

// QueueStub collects enqueued orders, accepting at most Capacity when set.
type QueueStub struct {
	Capacity int

	mu     sync.Mutex
	Orders []model.Order
}

// Enqueue stores the order unless the queue is full.
func (s *QueueStub) Enqueue(order model.Order) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Capacity > 0 && len(s.Orders) >= s.Capacity {
		return false
	}
	s.Orders = append(s.Orders, order)
	return true
}

// Queued returns a copy of the enqueued orders.
func (s *QueueStub) Queued() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Order(nil), s.Orders...)
}

// SweepLockStub grants or denies the reconciliation lock.
type SweepLockStub struct {
	Deny bool
	Err  error

	mu       sync.Mutex
	Acquired int
	Released int
}

// TryLock grants the lock unless Deny or Err is set.
func (s *SweepLockStub) TryLock(ctx context.Context) (func(context.Context) error, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	if s.Deny {
		return nil, false, nil
	}
	s.mu.Lock()
	s.Acquired++
	s.mu.Unlock()
	return func(context.Context) error {
		s.mu.Lock()
		s.Released++
		s.mu.Unlock()
		return nil
	}, true, nil
}

// Counts returns how often the lock was acquired and released.
func (s *SweepLockStub) Counts() (acquired, released int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Acquired, s.Released
}
