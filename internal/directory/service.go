package directory

import (
	"context"

	apperrors "servicehub/pkg/errors"
	"servicehub/pkg/logger"
	"servicehub/pkg/model"
)

type ProviderAPI interface {
	List(ctx context.Context) ([]model.ServiceProvider, error)
	Featured(ctx context.Context) ([]model.ServiceProvider, error)
	Get(ctx context.Context, id int64) (*model.ServiceProvider, error)
}

type Service struct {
	api       ProviderAPI
	snapshots SnapshotStore
	log       *logger.Logger
}

func NewService(api ProviderAPI, snapshots SnapshotStore, log *logger.Logger) *Service {
	if snapshots == nil {
		snapshots = NewMemorySnapshotStore()
	}
	return &Service{
		api:       api,
		snapshots: snapshots,
		log:       log,
	}
}

// List fetches every provider. When the backend cannot be reached the last
// successful result is returned together with the transport error, so the
// caller can show both. Nothing is ever made up: with no snapshot the list
// is empty.
func (s *Service) List(ctx context.Context) ([]model.ServiceProvider, error) {
	providers, err := s.api.List(ctx)
	if err == nil {
		if saveErr := s.snapshots.Save(ctx, providers); saveErr != nil {
			s.log.Warn("Failed to save provider snapshot", "error", saveErr)
		}
		return providers, nil
	}

	if !apperrors.IsTransport(err) {
		return nil, err
	}

	snapshot, loadErr := s.snapshots.Load(ctx)
	if loadErr != nil {
		s.log.Error("Failed to load provider snapshot", "error", loadErr)
		snapshot = []model.ServiceProvider{}
	}
	s.log.Warn("Provider list unavailable, serving snapshot",
		"snapshot_size", len(snapshot),
		"error", err,
	)
	return snapshot, err
}

// Search lists providers and applies f. The transport policy of List is
// kept: a snapshot is filtered too.
func (s *Service) Search(ctx context.Context, f model.ProviderFilter) ([]model.ServiceProvider, error) {
	providers, err := s.List(ctx)
	if providers == nil {
		return nil, err
	}
	return Filter(providers, f), err
}

func (s *Service) Featured(ctx context.Context) ([]model.ServiceProvider, error) {
	providers, err := s.api.Featured(ctx)
	if err != nil {
		if apperrors.IsTransport(err) {
			return []model.ServiceProvider{}, err
		}
		return nil, err
	}
	return providers, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.ServiceProvider, error) {
	if id <= 0 {
		return nil, apperrors.InvalidInput("provider id must be positive")
	}
	return s.api.Get(ctx, id)
}
