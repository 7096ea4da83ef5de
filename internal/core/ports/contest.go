package ports

import (
	"context"
	"time"

	"github.com/logica-uic/contest-backend/internal/core/domain"
)

// CreateContestInput carries all data needed to schedule a contest.
type CreateContestInput struct {
	Name     string
	StartsAt time.Time
	EndsAt   time.Time
}

// ContestRepository persists contests and maintains their live flag.
type ContestRepository interface {
	List(ctx context.Context) ([]domain.Contest, error)
	Create(ctx context.Context, c *domain.Contest) (*domain.Contest, error)
	Delete(ctx context.Context, id string) error

	// SyncLiveWindows sets live=true on contests whose window contains now
	// and live=false on the rest. Returns how many documents changed and
	// how many are currently live.
	SyncLiveWindows(ctx context.Context, now time.Time) (changed, live int64, err error)
}

// ContestService defines use-case operations for contests.
type ContestService interface {
	ListContests(ctx context.Context) ([]domain.Contest, error)
	CreateContest(ctx context.Context, input CreateContestInput) (*domain.Contest, error)
	DeleteContest(ctx context.Context, id string) error
	SyncLive(ctx context.Context, now time.Time) error
}
