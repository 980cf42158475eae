package models

import (
	"fmt"
	"strings"
)

// TransitionPolicy decides which status reassignments an admin may make.
type TransitionPolicy string

const (
	// TransitionAny permits moving an order to any valid status,
	// including backward moves. This matches the legacy behavior.
	TransitionAny TransitionPolicy = "any"
	// TransitionForwardOnly restricts moves to statuses at or beyond the
	// current one in the normal pending -> delivered progression.
	TransitionForwardOnly TransitionPolicy = "forward-only"
)

// ToTransitionPolicy validates a raw policy string.
func ToTransitionPolicy(s string) (TransitionPolicy, error) {
	switch TransitionPolicy(s) {
	case TransitionAny, TransitionForwardOnly:
		return TransitionPolicy(s), nil
	}
	return "", fmt.Errorf("invalid transition policy: %s", s)
}

// Allows reports whether the policy permits moving from one status to another.
func (p TransitionPolicy) Allows(from, to OrderStatus) bool {
	if p == TransitionForwardOnly {
		return to.Rank() >= from.Rank()
	}
	return true
}

// ShippedMatch decides how "the order was already shipped" is detected
// when deciding whether adding a tracking number warrants a shipping
// notification.
type ShippedMatch string

const (
	// ShippedMatchSubstring checks whether the prior status string
	// contains "shipped". This matches the legacy behavior; note that
	// "delivered" does not count as shipped under this mode.
	ShippedMatchSubstring ShippedMatch = "substring"
	// ShippedMatchExact treats exactly shipped or delivered as already
	// shipped.
	ShippedMatchExact ShippedMatch = "exact"
)

// ToShippedMatch validates a raw match-mode string.
func ToShippedMatch(s string) (ShippedMatch, error) {
	switch ShippedMatch(s) {
	case ShippedMatchSubstring, ShippedMatchExact:
		return ShippedMatch(s), nil
	}
	return "", fmt.Errorf("invalid shipped match mode: %s", s)
}

// AlreadyShipped reports whether the given prior status counts as shipped.
func (m ShippedMatch) AlreadyShipped(status OrderStatus) bool {
	if m == ShippedMatchExact {
		return status == OrderStatusShipped || status == OrderStatusDelivered
	}
	return strings.Contains(string(status), "shipped")
}
