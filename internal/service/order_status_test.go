package service

import (
	"testing"

	"github.com/souq-next/internal/constants"
)

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		current string
		target  string
		want    bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusShipped, false},
		{constants.OrderStatusPending, constants.OrderStatusDelivered, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusShipped, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusCancelled, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusReturned, false},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusReturned, true},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, false},
		{constants.OrderStatusDelivered, constants.OrderStatusReturned, true},
		{constants.OrderStatusCancelled, constants.OrderStatusPending, false},
		{constants.OrderStatusReturned, constants.OrderStatusPending, false},
		{constants.OrderStatusPending, constants.OrderStatusPending, false},
		{"", constants.OrderStatusConfirmed, false},
		{"pending", "confirmed", true},
		{" shipped ", "delivered", true},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.current, tc.target); got != tc.want {
			t.Errorf("isTransitionAllowed(%q, %q) want %v got %v", tc.current, tc.target, tc.want, got)
		}
	}
}

func TestStatusRestoresStock(t *testing.T) {
	if !statusRestoresStock(constants.OrderStatusCancelled) {
		t.Fatalf("cancelled should restore stock")
	}
	if !statusRestoresStock("returned") {
		t.Fatalf("returned should restore stock")
	}
	if statusRestoresStock(constants.OrderStatusDelivered) {
		t.Fatalf("delivered should not restore stock")
	}
}
