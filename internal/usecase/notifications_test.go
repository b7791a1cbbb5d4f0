package usecase

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/polkiloo/bundlemart/internal/domain/model"
	"github.com/polkiloo/bundlemart/internal/metrics"
	testhelpers "github.com/polkiloo/bundlemart/internal/test"
)

func TestNotificationMessages(t *testing.T) {
	order := model.Order{ID: 12, BeneficiaryNumber: "0241234567", Network: "MTN", BundleSize: "5GB", Total: money("19.5")}

	if got, want := DeliveredMessage(order), "Your 5GB MTN data bundle for 0241234567 has been delivered."; got != want {
		t.Fatalf("unexpected delivered message %q", got)
	}
	if got, want := RefundedMessage(order), "Your MTN order #12 was cancelled. 19.50 has been refunded to your wallet."; got != want {
		t.Fatalf("unexpected refund message %q", got)
	}
}

func TestNotificationsGoToOrderOwner(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	owner, _ := users.Create(context.Background(), "owner", "hash", "0207654321")
	notifier := &testhelpers.NotifierStub{}
	m := metrics.New("test")
	n := NewOrderNotifications(notifier, users, discardLogger(), m)

	n.Delivered(context.Background(), model.Order{ID: 1, UserID: owner.ID})
	n.Refunded(context.Background(), model.Order{ID: 2, UserID: 404, Total: money("1")})

	msgs := notifier.Messages()
	if len(msgs) != 1 || msgs[0].Phone != "0207654321" {
		t.Fatalf("unexpected notifications: %+v", msgs)
	}
	if got := testutil.ToFloat64(m.Notifications.WithLabelValues("delivered", "sent")); got != 1 {
		t.Fatalf("expected one sent metric, got %v", got)
	}
	if got := testutil.ToFloat64(m.Notifications.WithLabelValues("refunded", "failed")); got != 1 {
		t.Fatalf("expected one failed metric for missing recipient, got %v", got)
	}
}

func TestNotificationsWithoutNotifier(t *testing.T) {
	var n *OrderNotifications
	n.Delivered(context.Background(), model.Order{ID: 1})

	n = NewOrderNotifications(nil, testhelpers.NewUserRepositoryStub(), nil, nil)
	n.Refunded(context.Background(), model.Order{ID: 1})
}
