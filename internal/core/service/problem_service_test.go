package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/logica-uic/contest-backend/internal/core/domain"
	"github.com/logica-uic/contest-backend/internal/core/ports"
)

type stubProblemRepo struct {
	problems map[string]*domain.Problem // keyed by name
	nextID   int
}

func newStubProblemRepo() *stubProblemRepo {
	return &stubProblemRepo{problems: map[string]*domain.Problem{}}
}

func (r *stubProblemRepo) List(_ context.Context) ([]domain.Problem, error) {
	out := make([]domain.Problem, 0, len(r.problems))
	for _, p := range r.problems {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProblemRepo) Create(_ context.Context, p *domain.Problem) (*domain.Problem, error) {
	if _, exists := r.problems[p.Name]; exists {
		return nil, domain.ErrProblemExists
	}
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("problem-%d", r.nextID)
	r.problems[clone.Name] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubProblemRepo) Delete(_ context.Context, id string) error {
	for name, p := range r.problems {
		if p.ID == id {
			delete(r.problems, name)
			return nil
		}
	}
	return domain.ErrProblemNotFound
}

func TestProblemService_Create_RejectsDuplicateName(t *testing.T) {
	svc := NewProblemService(newStubProblemRepo(), zerolog.Nop())

	input := ports.CreateProblemInput{Name: "Two Sum", Difficulty: "easy", URL: "https://leetcode.com/problems/two-sum"}
	created, err := svc.CreateProblem(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateProblem returned error: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("expected populated problem, got %+v", created)
	}

	if _, err := svc.CreateProblem(context.Background(), input); !errors.Is(err, domain.ErrProblemExists) {
		t.Fatalf("expected ErrProblemExists, got %v", err)
	}
}

func TestProblemService_Create_Validation(t *testing.T) {
	svc := NewProblemService(newStubProblemRepo(), zerolog.Nop())
	if _, err := svc.CreateProblem(context.Background(), ports.CreateProblemInput{Name: "No URL", Difficulty: "hard"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProblemService_Delete(t *testing.T) {
	repo := newStubProblemRepo()
	svc := NewProblemService(repo, zerolog.Nop())

	created, err := svc.CreateProblem(context.Background(), ports.CreateProblemInput{Name: "Two Sum", Difficulty: "easy", URL: "https://example.com/1"})
	if err != nil {
		t.Fatalf("CreateProblem returned error: %v", err)
	}

	if err := svc.DeleteProblem(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteProblem returned error: %v", err)
	}
	if err := svc.DeleteProblem(context.Background(), created.ID); !errors.Is(err, domain.ErrProblemNotFound) {
		t.Fatalf("expected ErrProblemNotFound on second delete, got %v", err)
	}
}
