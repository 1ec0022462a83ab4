package model

import (
	"time"
)

type BookingStatus string

const (
	Pending   BookingStatus = "PENDING"
	Accepted  BookingStatus = "ACCEPTED"
	Rejected  BookingStatus = "REJECTED"
	Completed BookingStatus = "COMPLETED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	Pending:  {Accepted, Rejected},
	Accepted: {Completed},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case Pending, Accepted, Rejected, Completed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s BookingStatus) Terminal() bool {
	return s == Rejected || s == Completed
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID                int64         `json:"id"`
	CustomerID        int64         `json:"customerId"`
	ServiceProviderID int64         `json:"serviceProviderId"`
	ServiceType       string        `json:"serviceType"`
	Description       string        `json:"description"`
	ScheduledDate     Date          `json:"scheduledDate"`
	Status            BookingStatus `json:"status"`
	CustomerName      string        `json:"customerName,omitempty"`
	ProviderName      string        `json:"providerName,omitempty"`
	Fare              float64       `json:"fare"`
	CreatedAt         time.Time     `json:"createdAt"`
}

// BookingRequest is the body of POST /api/bookings. Fare is the provider's
// rate at the moment of booking.
type BookingRequest struct {
	CustomerID        int64   `json:"customerId" validate:"required,gt=0"`
	ServiceProviderID int64   `json:"serviceProviderId" validate:"required,gt=0"`
	ServiceType       string  `json:"serviceType" validate:"required,max=50"`
	Description       string  `json:"description" validate:"max=1000"`
	ScheduledDate     Date    `json:"scheduledDate"`
	Fare              float64 `json:"fare" validate:"gt=0"`
}

type StatusUpdate struct {
	Status BookingStatus `json:"status"`
}

type ProviderStats struct {
	TotalBookings   int     `json:"totalBookings"`
	PendingBookings int     `json:"pendingBookings"`
	CompletedJobs   int     `json:"completedJobs"`
	Rating          float64 `json:"rating"`
}
