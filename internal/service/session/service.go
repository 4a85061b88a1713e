package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	applog "github.com/zhouzirui/z-timer/backend/internal/log"
	"github.com/zhouzirui/z-timer/backend/internal/metrics"
	"github.com/zhouzirui/z-timer/backend/internal/model/session"
)

// Service validates candidates and owns the write path into the store.
type Service struct {
	store  session.Store
	logger zerolog.Logger
}

// NewService wraps a store. The store is never touched for rejected candidates.
func NewService(store session.Store) *Service {
	return &Service{
		store:  store,
		logger: applog.WithComponent("sessions"),
	}
}

// Create validates the candidate and appends it on success. Validation
// failures are returned as *session.ValidationError.
func (s *Service) Create(ctx context.Context, candidate session.Candidate) (session.Record, error) {
	if err := session.Validate(candidate); err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			metrics.RecordSessionRejected(string(verr.Kind))
			s.logger.Debug().Str("kind", string(verr.Kind)).Str("field", verr.Field).Msg("session rejected")
		}
		return session.Record{}, err
	}

	record, err := s.store.Append(ctx, *candidate.Name, *candidate.Time, candidate.CreatedAt.Time)
	if err != nil {
		return session.Record{}, fmt.Errorf("append session: %w", err)
	}

	metrics.RecordSessionCreated()
	s.logger.Info().Str("id", record.ID).Float64("elapsed", record.Time).Msg("session stored")
	return record, nil
}

// List returns all stored sessions in insertion order.
func (s *Service) List(ctx context.Context) ([]session.Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	metrics.RecordSessionList()
	return records, nil
}
