package fsm

import (
	"context"
	"database/sql"
	"errors"
)

// Status constants used by the booking state machine.
const (
	StatusPending                  = "pending"
	StatusAccepted                 = "accepted"
	StatusRejected                 = "rejected"
	StatusUserCancelled            = "user_cancelled"
	StatusCancelledAuto            = "cancelled_auto"
	StatusCompletedPaymentReleased = "completed_payment_released"
)

// ErrTransitionNotAllowed is returned by Apply when the requested transition
// is not present in the transition table.
var ErrTransitionNotAllowed = errors.New("fsm: transition not allowed")

var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusAccepted:      {},
		StatusRejected:      {},
		StatusUserCancelled: {},
		StatusCancelledAuto: {},
	},
	StatusAccepted: {
		StatusCompletedPaymentReleased: {},
		StatusUserCancelled:            {},
	},
	StatusRejected:                 {},
	StatusUserCancelled:            {},
	StatusCancelledAuto:            {},
	StatusCompletedPaymentReleased: {},
}

// CanTransition returns whether a booking may move from the current status to
// the target status. Self-transitions are not allowed: a terminal status must
// stay terminal and repeated cancellations must be rejected.
func CanTransition(from, to string) bool {
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

// IsTerminal reports whether the status admits no further transitions.
func IsTerminal(status string) bool {
	allowed, ok := transitions[status]
	return ok && len(allowed) == 0
}

// Apply updates a booking status using optimistic validation. It returns
// sql.ErrNoRows when the row is gone or its status changed under us, which is
// how concurrent settle/cancel/expiry races are detected.
func Apply(ctx context.Context, tx *sql.Tx, bookingID, fromStatus, toStatus string) error {
	if !CanTransition(fromStatus, toStatus) {
		return ErrTransitionNotAllowed
	}
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`, toStatus, bookingID, fromStatus)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
