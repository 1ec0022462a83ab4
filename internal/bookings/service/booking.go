package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	bookingserrors "servicehub/internal/bookings/errors"
	"servicehub/internal/bookings/validator"
	"servicehub/internal/events"
	apperrors "servicehub/pkg/errors"
	"servicehub/pkg/logger"
	"servicehub/pkg/model"
	"servicehub/pkg/sanitizer"
)

type BookingAPI interface {
	ListForCustomer(ctx context.Context, customerID int64) ([]model.Booking, error)
	ListForProvider(ctx context.Context, providerID int64) ([]model.Booking, error)
	Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error)
	SetStatus(ctx context.Context, bookingID int64, status model.BookingStatus) (*model.Booking, error)
}

type ProviderLookup interface {
	Get(ctx context.Context, id int64) (*model.ServiceProvider, error)
}

// Identity is the authenticated caller, usually a *session.Store.
type Identity interface {
	Require(role model.Role) (*model.User, error)
}

// BookingController drives the booking state machine from the client side.
// It remembers the last status seen for every booking it has listed, created
// or updated, and refuses transitions it already knows to be invalid without
// asking the backend.
type BookingController struct {
	api       BookingAPI
	providers ProviderLookup
	identity  Identity
	validator *validator.BookingValidator
	events    events.Publisher
	log       *logger.Logger
	now       func() time.Time

	mu    sync.RWMutex
	known map[int64]model.Booking
}

type Option func(*BookingController)

func WithClock(now func() time.Time) Option {
	return func(c *BookingController) { c.now = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(c *BookingController) { c.events = p }
}

func NewBookingController(api BookingAPI, providers ProviderLookup, identity Identity, log *logger.Logger, opts ...Option) *BookingController {
	c := &BookingController{
		api:       api,
		providers: providers,
		identity:  identity,
		validator: validator.NewBookingValidator(),
		events:    events.Noop{},
		log:       log,
		now:       time.Now,
		known:     make(map[int64]model.Booking),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *BookingController) Create(ctx context.Context, customerID, providerID int64, serviceType, description string, scheduledDate model.Date) (*model.Booking, error) {
	user, err := c.identity.Require(model.RoleCustomer)
	if err != nil {
		return nil, err
	}
	if user.ID != customerID {
		return nil, apperrors.Forbidden("bookings can only be requested for your own account").WithCause(bookingserrors.ErrNotOwnBooking)
	}

	provider, err := c.providers.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	req := model.BookingRequest{
		CustomerID:        customerID,
		ServiceProviderID: providerID,
		ServiceType:       sanitizer.NormalizeService(serviceType),
		Description:       sanitizer.TrimAndNormalize(description),
		ScheduledDate:     scheduledDate,
		Fare:              provider.Fare,
	}

	today := model.DateOf(c.now())
	if violations := c.validator.Validate(&req, provider, today); len(violations) > 0 {
		return nil, apperrors.Validation("booking request is invalid", violations)
	}

	booking, err := c.api.Create(ctx, req)
	if err != nil {
		c.log.Error("Failed to create booking",
			"customer_id", customerID,
			"provider_id", providerID,
			"error", err,
		)
		return nil, err
	}

	if booking.Status == "" {
		booking.Status = model.Pending
	}
	c.record(*booking)

	c.log.Info("Booking requested",
		"id", booking.ID,
		"customer_id", customerID,
		"provider_id", providerID,
		"service_type", req.ServiceType,
		"scheduled_date", req.ScheduledDate.String(),
	)
	c.events.Publish(ctx, events.Event{
		Type:       events.BookingRequested,
		Key:        strconv.FormatInt(booking.ID, 10),
		ActorID:    customerID,
		OccurredAt: c.now(),
		Payload:    booking,
	})
	return booking, nil
}

func (c *BookingController) ListForCustomer(ctx context.Context, customerID int64) ([]model.Booking, error) {
	bookings, err := c.api.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c.record(bookings...)
	return bookings, nil
}

func (c *BookingController) ListForProvider(ctx context.Context, providerID int64) ([]model.Booking, error) {
	bookings, err := c.api.ListForProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	c.record(bookings...)
	return bookings, nil
}

// SetStatus accepts or rejects a pending booking on behalf of its provider.
func (c *BookingController) SetStatus(ctx context.Context, bookingID int64, status model.BookingStatus) (*model.Booking, error) {
	if status != model.Accepted && status != model.Rejected {
		return nil, apperrors.Validation("invalid status change",
			[]string{"status must be ACCEPTED or REJECTED, got " + string(status)})
	}

	user, err := c.identity.Require(model.RoleServiceProvider)
	if err != nil {
		return nil, err
	}

	current, known := c.lookup(bookingID)
	if known {
		if current.ServiceProviderID != 0 && current.ServiceProviderID != user.ID {
			return nil, apperrors.Forbidden("only the assigned provider can update this booking").WithCause(bookingserrors.ErrNotOwnBooking)
		}
		if !current.Status.CanTransitionTo(status) {
			return nil, apperrors.InvalidTransition(bookingID, string(current.Status), string(status))
		}
	}

	updated, err := c.api.SetStatus(ctx, bookingID, status)
	if err != nil {
		if apperrors.IsInvalidTransition(err) {
			c.log.Warn("Backend refused status change",
				"id", bookingID,
				"status", status,
				"error", err,
			)
		}
		return nil, err
	}

	result := current
	if updated != nil {
		result = *updated
	}
	result.ID = bookingID
	result.Status = status
	if result.ServiceProviderID == 0 {
		result.ServiceProviderID = user.ID
	}
	c.record(result)

	c.log.Info("Booking status updated", "id", bookingID, "status", status, "provider_id", user.ID)

	eventType := events.BookingAccepted
	if status == model.Rejected {
		eventType = events.BookingRejected
	}
	c.events.Publish(ctx, events.Event{
		Type:       eventType,
		Key:        strconv.FormatInt(bookingID, 10),
		ActorID:    user.ID,
		OccurredAt: c.now(),
		Payload:    model.StatusUpdate{Status: status},
	})
	return &result, nil
}

// Known returns the last status recorded for a booking.
func (c *BookingController) Known(bookingID int64) (model.BookingStatus, bool) {
	b, ok := c.lookup(bookingID)
	return b.Status, ok
}

// Stats summarises a provider's bookings for the dashboard.
func Stats(bookings []model.Booking, rating float64) model.ProviderStats {
	stats := model.ProviderStats{
		TotalBookings: len(bookings),
		Rating:        rating,
	}
	for _, b := range bookings {
		switch b.Status {
		case model.Pending:
			stats.PendingBookings++
		case model.Completed:
			stats.CompletedJobs++
		}
	}
	return stats
}

func (c *BookingController) lookup(bookingID int64) (model.Booking, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.known[bookingID]
	return b, ok
}

func (c *BookingController) record(bookings ...model.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range bookings {
		if b.ID == 0 || !b.Status.Valid() {
			continue
		}
		c.known[b.ID] = b
	}
}
