package domain

import (
	"errors"
	"time"
)

var (
	ErrProblemNotFound = errors.New("problem not found")
	ErrProblemExists   = errors.New("problem already exists")
)

// Problem is a single contest exercise referencing an external judge URL.
type Problem struct {
	ID         string    `json:"id"`
	Name       string    `json:"problem_name"`
	Difficulty string    `json:"difficulty"`
	URL        string    `json:"url"`
	CreatedAt  time.Time `json:"created_at"`
}
