package ports

import (
	"context"

	"github.com/logica-uic/contest-backend/internal/core/domain"
)

// CreateProblemInput carries all data needed to add a problem.
type CreateProblemInput struct {
	Name       string
	Difficulty string
	URL        string
}

// ProblemRepository persists contest problems.
type ProblemRepository interface {
	List(ctx context.Context) ([]domain.Problem, error)
	Create(ctx context.Context, p *domain.Problem) (*domain.Problem, error)
	Delete(ctx context.Context, id string) error
}

// ProblemService defines use-case operations for problems.
type ProblemService interface {
	ListProblems(ctx context.Context) ([]domain.Problem, error)
	CreateProblem(ctx context.Context, input CreateProblemInput) (*domain.Problem, error)
	DeleteProblem(ctx context.Context, id string) error
}
