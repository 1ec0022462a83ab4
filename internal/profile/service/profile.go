package service

import (
	"context"
	"strconv"
	"time"

	"servicehub/internal/events"
	"servicehub/internal/profile/validator"
	apperrors "servicehub/pkg/errors"
	"servicehub/pkg/logger"
	"servicehub/pkg/model"
)

type ProfileAPI interface {
	Get(ctx context.Context, id int64) (*model.ServiceProvider, error)
	Update(ctx context.Context, id int64, patch model.ProfileUpdate) (*model.ServiceProvider, error)
}

// Identity is the authenticated caller whose displayed identity is refreshed
// after an edit, usually a *session.Store.
type Identity interface {
	Require(role model.Role) (*model.User, error)
	RefreshIdentity(user model.User)
}

type ProfileService struct {
	api       ProfileAPI
	identity  Identity
	validator *validator.ProfileValidator
	events    events.Publisher
	log       *logger.Logger
}

func NewProfileService(api ProfileAPI, identity Identity, publisher events.Publisher, log *logger.Logger) *ProfileService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &ProfileService{
		api:       api,
		identity:  identity,
		validator: validator.NewProfileValidator(),
		events:    publisher,
		log:       log,
	}
}

func (s *ProfileService) Get(ctx context.Context, providerID int64) (*model.ServiceProvider, error) {
	if providerID <= 0 {
		return nil, apperrors.InvalidInput("provider id must be positive")
	}
	return s.api.Get(ctx, providerID)
}

// Update applies patch to the caller's own provider profile. Fields the
// provider cannot edit keep the values of the stored profile whatever the
// backend echoes back.
func (s *ProfileService) Update(ctx context.Context, providerID int64, patch model.ProfileUpdate) (*model.ServiceProvider, error) {
	user, err := s.identity.Require(model.RoleServiceProvider)
	if err != nil {
		return nil, err
	}
	if user.ID != providerID {
		return nil, apperrors.Forbidden("you can only edit your own profile")
	}

	s.validator.Sanitize(&patch)
	if violations := s.validator.Validate(&patch); len(violations) > 0 {
		return nil, apperrors.Validation("profile update is invalid", violations)
	}

	stored, err := s.api.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	returned, err := s.api.Update(ctx, providerID, patch)
	if err != nil {
		s.log.Error("Failed to update profile", "provider_id", providerID, "error", err)
		return nil, err
	}

	merged := merge(*stored, returned, patch)

	s.identity.RefreshIdentity(merged.User)
	s.log.Info("Profile updated", "provider_id", providerID)
	s.events.Publish(ctx, events.Event{
		Type:       events.ProfileUpdated,
		Key:        strconv.FormatInt(providerID, 10),
		ActorID:    providerID,
		OccurredAt: time.Now(),
		Payload:    patch,
	})
	return &merged, nil
}

func merge(stored model.ServiceProvider, returned *model.ServiceProvider, patch model.ProfileUpdate) model.ServiceProvider {
	merged := stored
	if returned != nil {
		merged.Name = returned.Name
		merged.Phone = returned.Phone
		merged.Location = returned.Location
		merged.Services = returned.Services
		merged.Fare = returned.Fare
		merged.Description = returned.Description
	}
	// The patch wins over an echo that dropped or ignored a field.
	patch.Apply(&merged)

	merged.ID = stored.ID
	merged.Email = stored.Email
	merged.Role = stored.Role
	merged.Rating = stored.Rating
	merged.CompletedJobs = stored.CompletedJobs
	return merged
}
