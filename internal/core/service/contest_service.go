package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/logica-uic/contest-backend/internal/core/domain"
	"github.com/logica-uic/contest-backend/internal/core/ports"
	"github.com/logica-uic/contest-backend/pkg/metrics"
)

type nowFunc func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

// ContestService manages scheduled contests and keeps their live flag in
// step with the wall clock.
type ContestService struct {
	repo   ports.ContestRepository
	logger zerolog.Logger

	now nowFunc
}

func NewContestService(repo ports.ContestRepository, logger zerolog.Logger) *ContestService {
	return &ContestService{repo: repo, logger: logger, now: utcNow}
}

func (s *ContestService) ListContests(ctx context.Context) ([]domain.Contest, error) {
	return s.repo.List(ctx)
}

// CreateContest schedules a contest. The live flag starts according to the
// window so a contest created mid-window goes live without waiting for the
// next sync pass.
func (s *ContestService) CreateContest(ctx context.Context, input ports.CreateContestInput) (*domain.Contest, error) {
	if input.Name == "" || input.StartsAt.IsZero() || input.EndsAt.IsZero() {
		return nil, domain.ErrValidation
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, domain.ErrInvalidWindow
	}

	now := s.now()
	contest := &domain.Contest{
		Name:      input.Name,
		StartsAt:  input.StartsAt.UTC(),
		EndsAt:    input.EndsAt.UTC(),
		CreatedAt: now,
	}
	contest.Live = contest.InWindow(now)

	created, err := s.repo.Create(ctx, contest)
	if err != nil {
		s.logger.Error().Err(err).Str("contest", input.Name).Msg("failed to create contest")
		return nil, err
	}

	s.logger.Info().
		Str("contest", created.Name).
		Time("starts_at", created.StartsAt).
		Time("ends_at", created.EndsAt).
		Msg("contest scheduled")
	return created, nil
}

func (s *ContestService) DeleteContest(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("contest_id", id).Msg("contest deleted")
	return nil
}

// SyncLive flips live flags to match each contest's window at now. Called
// periodically by the scheduler.
func (s *ContestService) SyncLive(ctx context.Context, now time.Time) error {
	changed, live, err := s.repo.SyncLiveWindows(ctx, now)
	if err != nil {
		metrics.ContestSyncsTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Msg("contest live sync failed")
		return err
	}

	metrics.ContestSyncsTotal.WithLabelValues("ok").Inc()
	metrics.ContestsLive.Set(float64(live))
	if changed > 0 {
		s.logger.Info().Int64("changed", changed).Int64("live", live).Msg("contest live flags updated")
	}
	return nil
}
