package services

import "errors"

var (
	ErrVacancyNotFound   = errors.New("vacancy not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrResumeNotFound    = errors.New("resume not found")
	ErrEmailRequired     = errors.New("email is required")
	ErrCandidateExists   = errors.New("candidate already applied to vacancy")
)
