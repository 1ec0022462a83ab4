package validator

import (
	"fmt"
	"strings"

	bookingserrors "servicehub/internal/bookings/errors"
	"servicehub/pkg/model"
	"servicehub/pkg/sanitizer"
	"servicehub/pkg/validation"
)

const MaxDescriptionLength = 1000

type BookingValidator struct {
	validate *validation.Validator
}

func NewBookingValidator() *BookingValidator {
	return &BookingValidator{validate: validation.New()}
}

// Validate checks a booking request against the provider it targets and
// the current calendar date. Every violation is returned.
func (v *BookingValidator) Validate(req *model.BookingRequest, provider *model.ServiceProvider, today model.Date) []string {
	violations := v.validate.Struct(req)

	if req.ServiceType != "" && !offers(provider, req.ServiceType) {
		violations = append(violations, fmt.Sprintf("%s: %s", bookingserrors.ErrServiceNotOffered, req.ServiceType))
	}

	switch {
	case req.ScheduledDate.IsZero():
		violations = append(violations, "scheduledDate is required")
	case req.ScheduledDate.Before(today):
		violations = append(violations, fmt.Sprintf("%s: %s is before %s", bookingserrors.ErrDateInPast, req.ScheduledDate, today))
	}

	return violations
}

func offers(provider *model.ServiceProvider, service string) bool {
	want := sanitizer.NormalizeService(service)
	for _, s := range provider.Services {
		if strings.EqualFold(sanitizer.NormalizeService(s), want) {
			return true
		}
	}
	return false
}
