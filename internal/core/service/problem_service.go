package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/logica-uic/contest-backend/internal/core/domain"
	"github.com/logica-uic/contest-backend/internal/core/ports"
)

// ProblemService is a thin layer over the problem store: listing,
// duplicate-checked creation, and deletion.
type ProblemService struct {
	repo   ports.ProblemRepository
	logger zerolog.Logger

	now nowFunc
}

func NewProblemService(repo ports.ProblemRepository, logger zerolog.Logger) *ProblemService {
	return &ProblemService{repo: repo, logger: logger, now: utcNow}
}

func (s *ProblemService) ListProblems(ctx context.Context) ([]domain.Problem, error) {
	return s.repo.List(ctx)
}

// CreateProblem adds a problem, rejecting duplicate names.
func (s *ProblemService) CreateProblem(ctx context.Context, input ports.CreateProblemInput) (*domain.Problem, error) {
	if input.Name == "" || input.Difficulty == "" || input.URL == "" {
		return nil, domain.ErrValidation
	}

	created, err := s.repo.Create(ctx, &domain.Problem{
		Name:       input.Name,
		Difficulty: input.Difficulty,
		URL:        input.URL,
		CreatedAt:  s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("problem", input.Name).Msg("failed to create problem")
		return nil, err
	}

	s.logger.Info().Str("problem", created.Name).Str("difficulty", created.Difficulty).Msg("problem created")
	return created, nil
}

func (s *ProblemService) DeleteProblem(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrValidation
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("problem_id", id).Msg("problem deleted")
	return nil
}
