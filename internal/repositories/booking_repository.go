package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fishhook/internal/booking/fsm"
	"fishhook/internal/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id, user_id, user_name, model_id, model_name, price, booking_date, booking_time,
		status, total_price, is_paid, user_confirmed, model_confirmed,
		user_location, live_location_link, caller_line, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	query := `
		INSERT INTO bookings
			(id, user_id, user_name, model_id, model_name, price, booking_date, booking_time,
			 status, total_price, is_paid, user_confirmed, model_confirmed,
			 user_location, live_location_link, caller_line, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		b.ID, b.UserID, b.UserName, b.ModelID, b.ModelName, b.Price, b.Date, b.Time,
		b.Status, b.TotalPrice, b.IsPaid, b.UserConfirmed, b.ModelConfirmed,
		b.UserLocation, b.LiveLocationLink, b.CallerLine, b.CreatedAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`

	var b models.Booking
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.UserName, &b.ModelID, &b.ModelName, &b.Price, &b.Date, &b.Time,
		&b.Status, &b.TotalPrice, &b.IsPaid, &b.UserConfirmed, &b.ModelConfirmed,
		&b.UserLocation, &b.LiveLocationLink, &b.CallerLine, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, models.ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func (r *BookingRepository) SetUserConfirmed(ctx context.Context, id string) error {
	return r.setConfirmed(ctx, id, "user_confirmed")
}

func (r *BookingRepository) SetModelConfirmed(ctx context.Context, id string) error {
	return r.setConfirmed(ctx, id, "model_confirmed")
}

func (r *BookingRepository) setConfirmed(ctx context.Context, id, column string) error {
	query := `UPDATE bookings SET ` + column + ` = true, updated_at = ? WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

// UpdateStatus moves a booking between statuses with an optimistic
// compare-and-set so concurrent settle/cancel/expiry attempts cannot both
// win. Losing the race reports ErrInvalidState.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id, from, to string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fsm.Apply(ctx, tx, id, from, to); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, fsm.ErrTransitionNotAllowed) {
			return models.ErrInvalidState
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE bookings SET updated_at = ? WHERE id = ?`, time.Now(), id); err != nil {
		return err
	}
	return tx.Commit()
}

// Settle releases payment for a booking: the status transition to
// completed_payment_released and the earnings credit commit in one
// transaction, so a failed credit leaves the booking accepted and the
// settlement retryable. Earnings are never decremented.
func (r *BookingRepository) Settle(ctx context.Context, bookingID, modelID string, net float64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fsm.Apply(ctx, tx, bookingID, fsm.StatusAccepted, fsm.StatusCompletedPaymentReleased); err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, fsm.ErrTransitionNotAllowed) {
			return models.ErrInvalidState
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE bookings SET updated_at = ? WHERE id = ?`, time.Now(), bookingID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `UPDATE model_profiles SET earnings = earnings + ?, updated_at = ? WHERE id = ?`, net, time.Now(), modelID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrModelNotFound
	}
	return tx.Commit()
}

// ListByModel is the model-side projection of the canonical bookings table.
func (r *BookingRepository) ListByModel(ctx context.Context, modelID string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE model_id = ? ORDER BY created_at DESC`
	return r.list(ctx, query, modelID)
}

// ListByUser is the user-side history projection of the same table.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

// ListPendingBefore returns pending bookings created at or before the cutoff.
func (r *BookingRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = ? AND created_at <= ? ORDER BY created_at`
	return r.list(ctx, query, fsm.StatusPending, cutoff)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&b.ID, &b.UserID, &b.UserName, &b.ModelID, &b.ModelName, &b.Price, &b.Date, &b.Time,
			&b.Status, &b.TotalPrice, &b.IsPaid, &b.UserConfirmed, &b.ModelConfirmed,
			&b.UserLocation, &b.LiveLocationLink, &b.CallerLine, &b.CreatedAt, &b.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
