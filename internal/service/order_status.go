package service

import (
	"strings"

	"github.com/souq-next/internal/constants"
)

// orderStatusTransitions describes the allowed lifecycle moves.
// CANCELLED and RETURNED are terminal.
var orderStatusTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusReturned:  true,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusReturned: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	current = normalizeOrderStatus(current)
	target = normalizeOrderStatus(target)
	if current == "" || target == "" || current == target {
		return false
	}
	nexts, ok := orderStatusTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

func normalizeOrderStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

// statusRestoresStock reports whether entering the status hands stock
// back to the catalog.
func statusRestoresStock(target string) bool {
	switch normalizeOrderStatus(target) {
	case constants.OrderStatusCancelled, constants.OrderStatusReturned:
		return true
	default:
		return false
	}
}
