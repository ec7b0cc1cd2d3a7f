package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"fishhook/internal/booking/fsm"
	"fishhook/internal/booking/pricing"
	"fishhook/internal/models"
)

// BookingStore is the persistence contract for the lifecycle engine. The SQL
// implementation lives in internal/repositories; tests supply an in-memory
// fake. UpdateStatus must be a compare-and-set: it fails with
// models.ErrInvalidState when the booking is no longer in the expected
// status, which is what makes settlement and expiry race-safe across
// processes. Settle must apply the accepted -> completed_payment_released
// transition and the earnings credit atomically: either both happen or
// neither does, so a failed settle stays retryable.
type BookingStore interface {
	Create(ctx context.Context, b models.Booking) (models.Booking, error)
	GetByID(ctx context.Context, id string) (models.Booking, error)
	SetUserConfirmed(ctx context.Context, id string) error
	SetModelConfirmed(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id, from, to string) error
	Settle(ctx context.Context, bookingID, modelID string, net float64) error
	ListByModel(ctx context.Context, modelID string) ([]models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
}

// ModelStore is the slice of the model directory the engine needs: existence
// and the net price for quoting and denormalization.
type ModelStore interface {
	GetModelByID(ctx context.Context, id string) (models.Model, error)
}

// UserStore resolves the acting user for denormalized display fields.
type UserStore interface {
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// ViewInvalidator is notified after every successful mutation so dependent
// views (cached profiles, connected clients) can refresh.
type ViewInvalidator interface {
	BookingChanged(ctx context.Context, modelID, userID string)
}

// BookingService is the booking lifecycle engine: creation, accept/reject,
// dual confirmation with settlement, user cancellation and auto-expiry. All
// mutations on one booking id are serialized through a per-booking mutex; the
// expiry sweep uses the same locks.
type BookingService struct {
	Bookings    BookingStore
	Models      ModelStore
	Users       UserStore
	Invalidator ViewInvalidator
	Pricing     pricing.Calculator

	// ExpiryThreshold is how long a booking may stay pending before the
	// sweep auto-cancels it.
	ExpiryThreshold time.Duration

	ErrorLog *log.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

const DefaultExpiryThreshold = 30 * time.Minute

func NewBookingService(bookings BookingStore, modelStore ModelStore, userStore UserStore, inv ViewInvalidator, calc pricing.Calculator, expiry time.Duration) *BookingService {
	if expiry <= 0 {
		expiry = DefaultExpiryThreshold
	}
	return &BookingService{
		Bookings:        bookings,
		Models:          modelStore,
		Users:           userStore,
		Invalidator:     inv,
		Pricing:         calc,
		ExpiryThreshold: expiry,
		locks:           make(map[string]*sync.Mutex),
	}
}

func (s *BookingService) lockBooking(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

func (s *BookingService) notify(ctx context.Context, modelID, userID string) {
	if s.Invalidator != nil {
		s.Invalidator.BookingChanged(ctx, modelID, userID)
	}
}

// Quote returns the user-facing price for one hour with a model.
func (s *BookingService) Quote(ctx context.Context, modelID string) (models.BookingQuote, error) {
	m, err := s.Models.GetModelByID(ctx, modelID)
	if err != nil {
		return models.BookingQuote{}, err
	}
	return models.BookingQuote{
		ModelID:      m.ID,
		ModelName:    m.Name,
		PricePerHour: m.PricePerHour,
		TotalPrice:   s.Pricing.Gross(m.PricePerHour),
	}, nil
}

// CreateBooking inserts a new pending booking. Payment is assumed completed
// by the external gateway before this call, so the booking starts paid with
// both confirmation flags down. Display names and the model's net price are
// denormalized onto the record at creation time.
func (s *BookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (models.Booking, error) {
	if req.ModelID == "" || req.UserID == "" || req.Date == "" || req.Time == "" ||
		req.UserLocation == "" || req.LiveLocationLink == "" || req.CallerLine == "" {
		return models.Booking{}, fmt.Errorf("%w: all booking details are required", models.ErrValidation)
	}
	if req.TotalPrice <= 0 {
		return models.Booking{}, fmt.Errorf("%w: total price must be positive", models.ErrValidation)
	}

	m, err := s.Models.GetModelByID(ctx, req.ModelID)
	if err != nil {
		return models.Booking{}, err
	}
	u, err := s.Users.GetUserByID(ctx, req.UserID)
	if err != nil {
		return models.Booking{}, err
	}

	b := models.Booking{
		ID:               uuid.New().String(),
		UserID:           u.ID,
		UserName:         u.Name,
		ModelID:          m.ID,
		ModelName:        m.Name,
		Price:            m.PricePerHour,
		Date:             req.Date,
		Time:             req.Time,
		Status:           fsm.StatusPending,
		TotalPrice:       req.TotalPrice,
		IsPaid:           true,
		UserLocation:     req.UserLocation,
		LiveLocationLink: req.LiveLocationLink,
		CallerLine:       req.CallerLine,
		CreatedAt:        time.Now().UTC(),
	}
	created, err := s.Bookings.Create(ctx, b)
	if err != nil {
		return models.Booking{}, err
	}
	s.notify(ctx, created.ModelID, created.UserID)
	return created, nil
}

// AcceptOrReject records the model's decision on a pending booking. The
// pending precondition is checked here, not left to the caller's UI.
func (s *BookingService) AcceptOrReject(ctx context.Context, bookingID, actingModelID, decision string) (models.Booking, error) {
	if decision != fsm.StatusAccepted && decision != fsm.StatusRejected {
		return models.Booking{}, fmt.Errorf("%w: decision must be accepted or rejected", models.ErrValidation)
	}
	unlock := s.lockBooking(bookingID)
	defer unlock()

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if b.ModelID != actingModelID {
		return models.Booking{}, models.ErrUnauthorized
	}
	if b.Status != fsm.StatusPending {
		return models.Booking{}, models.ErrInvalidState
	}
	if err := s.Bookings.UpdateStatus(ctx, b.ID, fsm.StatusPending, decision); err != nil {
		return models.Booking{}, err
	}
	b.Status = decision
	s.notify(ctx, b.ModelID, b.UserID)
	return b, nil
}

// ConfirmByUser marks service delivery confirmed by the booking's user. When
// the model has already confirmed, this call releases the payment.
func (s *BookingService) ConfirmByUser(ctx context.Context, bookingID, actingUserID string) (models.Booking, error) {
	unlock := s.lockBooking(bookingID)
	defer unlock()

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if b.UserID != actingUserID {
		return models.Booking{}, models.ErrUnauthorized
	}
	if b.Status != fsm.StatusAccepted || !b.IsPaid {
		return models.Booking{}, models.ErrInvalidState
	}
	if !b.UserConfirmed {
		if err := s.Bookings.SetUserConfirmed(ctx, b.ID); err != nil {
			return models.Booking{}, err
		}
		b.UserConfirmed = true
	}
	if b.ModelConfirmed {
		if err := s.settlePayment(ctx, &b); err != nil {
			return models.Booking{}, err
		}
	}
	s.notify(ctx, b.ModelID, b.UserID)
	return b, nil
}

// ConfirmByModel is the model-side counterpart of ConfirmByUser.
func (s *BookingService) ConfirmByModel(ctx context.Context, bookingID, actingModelID string) (models.Booking, error) {
	unlock := s.lockBooking(bookingID)
	defer unlock()

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return models.Booking{}, err
	}
	if b.ModelID != actingModelID {
		return models.Booking{}, models.ErrUnauthorized
	}
	if b.Status != fsm.StatusAccepted || !b.IsPaid {
		return models.Booking{}, models.ErrInvalidState
	}
	if !b.ModelConfirmed {
		if err := s.Bookings.SetModelConfirmed(ctx, b.ID); err != nil {
			return models.Booking{}, err
		}
		b.ModelConfirmed = true
	}
	if b.UserConfirmed {
		if err := s.settlePayment(ctx, &b); err != nil {
			return models.Booking{}, err
		}
	}
	s.notify(ctx, b.ModelID, b.UserID)
	return b, nil
}

// settlePayment splits the gross amount and hands the release to the store,
// which commits the status transition and the earnings credit as one unit.
// The caller holds the per-booking lock; the compare-and-set inside Settle is
// the second guard, so the split is credited exactly once even if two settle
// attempts race, and a storage failure leaves the booking accepted so a
// later confirmation retries the release.
func (s *BookingService) settlePayment(ctx context.Context, b *models.Booking) error {
	if !b.IsPaid || !b.UserConfirmed || !b.ModelConfirmed {
		return models.ErrNotReady
	}
	net, _ := s.Pricing.Split(b.TotalPrice)
	if err := s.Bookings.Settle(ctx, b.ID, b.ModelID, net); err != nil {
		return fmt.Errorf("settle booking %s: %w", b.ID, err)
	}
	b.Status = fsm.StatusCompletedPaymentReleased
	return nil
}

// CancelByUser cancels a booking on the user's initiative and reports the
// money breakdown. For a paid booking the net part goes back toward the user
// and the commission stays with the platform; the model's earnings are never
// touched because nothing was settled. For an unpaid booking the reported
// refund equals the total price but is informational only.
func (s *BookingService) CancelByUser(ctx context.Context, bookingID, actingUserID string) (models.CancellationReceipt, error) {
	unlock := s.lockBooking(bookingID)
	defer unlock()

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return models.CancellationReceipt{}, err
	}
	if b.UserID != actingUserID {
		return models.CancellationReceipt{}, models.ErrUnauthorized
	}
	switch b.Status {
	case fsm.StatusCompletedPaymentReleased, fsm.StatusRejected, fsm.StatusCancelledAuto, fsm.StatusUserCancelled:
		return models.CancellationReceipt{}, fmt.Errorf("%w: booking cannot be cancelled at this stage", models.ErrInvalidState)
	}

	var refund, commission float64
	if b.IsPaid {
		refund, commission = s.Pricing.Split(b.TotalPrice)
	} else {
		refund = b.TotalPrice
	}

	if err := s.Bookings.UpdateStatus(ctx, b.ID, b.Status, fsm.StatusUserCancelled); err != nil {
		return models.CancellationReceipt{}, err
	}
	b.Status = fsm.StatusUserCancelled
	s.notify(ctx, b.ModelID, b.UserID)
	return models.CancellationReceipt{
		Booking:          b,
		RefundAmount:     refund,
		CommissionAmount: commission,
	}, nil
}

// ExpirePending auto-cancels pending bookings older than the expiry
// threshold, measured in absolute elapsed time so missed ticks still catch
// up. Failures on one booking are logged and do not abort the sweep.
func (s *BookingService) ExpirePending(ctx context.Context, now time.Time) (int, error) {
	stale, err := s.Bookings.ListPendingBefore(ctx, now.Add(-s.ExpiryThreshold))
	if err != nil {
		return 0, err
	}
	processed := 0
	for _, b := range stale {
		if err := s.expireOne(ctx, b.ID); err != nil {
			if s.ErrorLog != nil {
				s.ErrorLog.Printf("booking expirer: booking %s: %v", b.ID, err)
			}
			continue
		}
		processed++
	}
	return processed, nil
}

func (s *BookingService) expireOne(ctx context.Context, id string) error {
	unlock := s.lockBooking(id)
	defer unlock()

	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status != fsm.StatusPending {
		// accepted or cancelled between listing and locking
		return nil
	}
	if err := s.Bookings.UpdateStatus(ctx, id, fsm.StatusPending, fsm.StatusCancelledAuto); err != nil {
		return err
	}
	s.notify(ctx, b.ModelID, b.UserID)
	return nil
}

// BookingsForModel is the model-side view of the booking list.
func (s *BookingService) BookingsForModel(ctx context.Context, modelID string) ([]models.Booking, error) {
	return s.Bookings.ListByModel(ctx, modelID)
}

// HistoryForUser is the user-side booking history view.
func (s *BookingService) HistoryForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}
