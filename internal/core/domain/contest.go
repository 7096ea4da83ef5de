package domain

import (
	"errors"
	"time"
)

var (
	ErrContestNotFound = errors.New("contest not found")
	ErrContestExists   = errors.New("contest already exists")
	ErrInvalidWindow   = errors.New("contest window ends before it starts")
)

// Contest is a scheduled competition. Live is maintained by the background
// sync loop: true exactly while StartsAt <= now < EndsAt.
type Contest struct {
	ID        string    `json:"id"`
	Name      string    `json:"contest_name"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Live      bool      `json:"live"`
	CreatedAt time.Time `json:"created_at"`
}

// InWindow reports whether the contest should be live at now.
func (c Contest) InWindow(now time.Time) bool {
	return !now.Before(c.StartsAt) && now.Before(c.EndsAt)
}
