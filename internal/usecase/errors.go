package usecase

import (
	"errors"

	"github.com/riskibarqy/matchday-aggregator/internal/normalizer"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrRateLimited           = errors.New("rate limited by upstream")
	ErrMalformedRecord       = normalizer.ErrMalformedRecord
)
