package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order statuses
const (
	StatusPending             OrderStatus = "PENDING"
	StatusPendingVerification OrderStatus = "PENDING_VERIFICATION"
	StatusConfirmed           OrderStatus = "CONFIRMED"
	StatusShipped             OrderStatus = "SHIPPED"
	StatusDelivered           OrderStatus = "DELIVERED"
	StatusCancelled           OrderStatus = "CANCELLED"
	StatusCancellationReq     OrderStatus = "CANCELLATION_REQUESTED"
)

// OrderStatuses lists every valid order status, for API validation.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusPendingVerification,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusCancellationReq,
}

// statusRank orders the forward-only progression. Moving to a status
// with a higher rank is allowed, including skipping intermediate steps.
var statusRank = map[OrderStatus]int{
	StatusPendingVerification: 0,
	StatusPending:             1,
	StatusConfirmed:           2,
	StatusShipped:             3,
	StatusDelivered:           4,
}

// CancellationWindow is how long after placement a customer may request
// cancellation. Wall-clock difference, not business hours.
const CancellationWindow = 24 * time.Hour

// Valid reports whether s names a known order status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions may leave s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// TransitionError is returned for a rejected status transition.
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
	Why  string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s: %s", e.From, e.To, e.Why)
}

// CanTransition validates a direct admin status change. Cancellation
// requests and their resolutions go through RequestCancellation and
// ResolveCancellation, never through here.
func CanTransition(from, to OrderStatus) error {
	if !from.Valid() || !to.Valid() {
		return &TransitionError{From: from, To: to, Why: "unknown status"}
	}
	if from == to {
		return &TransitionError{From: from, To: to, Why: "order is already in this status"}
	}
	if from.Terminal() {
		return &TransitionError{From: from, To: to, Why: "order is in a terminal status"}
	}
	if from == StatusCancellationReq {
		return &TransitionError{From: from, To: to, Why: "a cancellation request is pending and must be resolved first"}
	}
	if to == StatusCancelled {
		// Reachable from any non-terminal state.
		return nil
	}
	if to == StatusCancellationReq {
		return &TransitionError{From: from, To: to, Why: "cancellation must be requested through the cancellation workflow"}
	}
	if statusRank[to] <= statusRank[from] {
		return &TransitionError{From: from, To: to, Why: "status can only move forward"}
	}
	return nil
}

// courierTrackingTemplates maps known courier slugs to their public
// tracking URL templates. "other" couriers supply the URL manually.
var courierTrackingTemplates = map[string]string{
	"delhivery": "https://www.delhivery.com/track/package/%s",
	"bluedart":  "https://www.bluedart.com/tracking?trackfor=awb&trackno=%s",
	"dtdc":      "https://www.dtdc.in/tracking.asp?awb=%s",
	"fedex":     "https://www.fedex.com/fedextrack/?trknbr=%s",
	"dhl":       "https://www.dhl.com/in-en/home/tracking.html?tracking-id=%s",
	"indiapost": "https://www.indiapost.gov.in/_layouts/15/dop.portal.tracking/trackconsignment.aspx?lt=%s",
}

// TrackingURLFor derives the tracking URL for a known courier. The
// second return is false for unknown couriers ("other"), which must
// provide a URL of their own.
func TrackingURLFor(courier, trackingNumber string) (string, bool) {
	tpl, ok := courierTrackingTemplates[strings.ToLower(courier)]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(tpl, trackingNumber), true
}

// ShippingInfo carries the fields required to move an order to SHIPPED.
type ShippingInfo struct {
	TrackingNumber  string
	CourierProvider string
	TrackingURL     string // required only for couriers without a template
}

// ApplyStatus transitions the order to a new status, enforcing the
// state machine. Moving to SHIPPED requires tracking details.
func (o *Order) ApplyStatus(to OrderStatus, shipping *ShippingInfo) error {
	if err := CanTransition(o.OrderStatus, to); err != nil {
		return err
	}

	if to == StatusShipped {
		if shipping == nil || shipping.TrackingNumber == "" || shipping.CourierProvider == "" {
			return &TransitionError{From: o.OrderStatus, To: to, Why: "tracking number and courier provider are required"}
		}
		url, ok := TrackingURLFor(shipping.CourierProvider, shipping.TrackingNumber)
		if !ok {
			if shipping.TrackingURL == "" {
				return &TransitionError{From: o.OrderStatus, To: to, Why: "tracking URL is required for this courier"}
			}
			url = shipping.TrackingURL
		}
		o.TrackingNumber = &shipping.TrackingNumber
		o.CourierProvider = &shipping.CourierProvider
		o.TrackingURL = &url
	}

	o.OrderStatus = to
	return nil
}

// CanRequestCancellation checks the customer-visible precondition: the
// order is PENDING or CONFIRMED and was placed within the window.
func (o *Order) CanRequestCancellation(now time.Time) error {
	if o.OrderStatus != StatusPending && o.OrderStatus != StatusConfirmed {
		return &TransitionError{From: o.OrderStatus, To: StatusCancellationReq, Why: "only pending or confirmed orders can be cancelled"}
	}
	if now.Sub(o.CreatedAt) > CancellationWindow {
		return &TransitionError{From: o.OrderStatus, To: StatusCancellationReq, Why: "orders can only be cancelled within 24 hours of placement"}
	}
	return nil
}

// RequestCancellation files a customer cancellation request, recording
// the status to revert to if the request is rejected.
func (o *Order) RequestCancellation(reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("cancellation reason is required")
	}
	if err := o.CanRequestCancellation(now); err != nil {
		return err
	}

	prior := o.OrderStatus
	o.StatusBeforeCancellation = &prior
	o.Cancellation = CancellationRequest{
		Reason:      reason,
		RequestedAt: &now,
		Status:      CancellationPending,
	}
	o.OrderStatus = StatusCancellationReq
	return nil
}

// ResolveCancellation applies the admin decision on a pending request.
// APPROVED moves the order to CANCELLED; REJECTED restores the status
// recorded when the request was filed. Both require a non-empty note.
func (o *Order) ResolveCancellation(action, note string) error {
	if strings.TrimSpace(note) == "" {
		return fmt.Errorf("an admin note is required to resolve a cancellation request")
	}
	if o.OrderStatus != StatusCancellationReq || o.Cancellation.Status != CancellationPending {
		return fmt.Errorf("order has no pending cancellation request")
	}

	switch action {
	case CancellationApproved:
		o.OrderStatus = StatusCancelled
	case CancellationRejected:
		if o.StatusBeforeCancellation != nil {
			o.OrderStatus = *o.StatusBeforeCancellation
		} else {
			o.OrderStatus = StatusPending
		}
	default:
		return fmt.Errorf("cancellation action must be %s or %s", CancellationApproved, CancellationRejected)
	}

	o.Cancellation.Status = action
	o.Cancellation.AdminNote = note
	return nil
}
