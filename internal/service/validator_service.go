package service

import (
	"context"
	"errors"
	"log"
	"regexp"

	"sarvekshan/internal/model"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/store"
)

// ErrInvalidFormat rejects a UDISE code that is not exactly 11 decimal
// digits. Always local; no lookup is attempted.
var ErrInvalidFormat = errors.New("UDISE code must be exactly 11 digits")

var udisePattern = regexp.MustCompile(`^\d{11}$`)

// ValidationStatus is the terminal state of one validation attempt
type ValidationStatus string

const (
	StatusValidated ValidationStatus = "validated"
	// StatusNotFound means the directory and the cache both missed while online.
	StatusNotFound ValidationStatus = "not_found"
	// StatusNeedsNetwork means offline with a cache miss: the school might
	// exist but cannot be checked. Distinct from NotFound because the
	// remediation differs (connect, or try a different code).
	StatusNeedsNetwork ValidationStatus = "needs_network"
)

// ValidationResult is the outcome of one attempt. School is set only when
// Status is StatusValidated.
type ValidationResult struct {
	Status ValidationStatus `json:"status"`
	School *model.School    `json:"school,omitempty"`
	// FromCache marks a hit served by the offline school cache.
	FromCache bool `json:"fromCache,omitempty"`
}

// ValidatorService resolves school codes from the directory or the offline
// cache depending on connectivity. Every Validate call is an independent
// attempt; entering a new code simply means calling again.
type ValidatorService struct {
	directory repository.SchoolDirectory
	cache     store.SchoolCache
	network   *NetworkService
}

// NewValidatorService creates a new UDISE validator
func NewValidatorService(directory repository.SchoolDirectory, cache store.SchoolCache, network *NetworkService) *ValidatorService {
	return &ValidatorService{
		directory: directory,
		cache:     cache,
		network:   network,
	}
}

// Validate resolves the code into a terminal ValidationResult, or
// ErrInvalidFormat before any lookup.
func (s *ValidatorService) Validate(ctx context.Context, code string) (*ValidationResult, error) {
	if !udisePattern.MatchString(code) {
		return nil, ErrInvalidFormat
	}

	if !s.network.IsOnline() {
		school, err := s.cache.Lookup(ctx, code)
		if err != nil {
			return nil, err
		}
		if school == nil {
			return &ValidationResult{Status: StatusNeedsNetwork}, nil
		}
		return &ValidationResult{Status: StatusValidated, School: school, FromCache: true}, nil
	}

	school, err := s.directory.Resolve(ctx, code)
	if err != nil {
		// Directory unreachable: degrade to the cache rather than fail.
		log.Printf("school directory unreachable, falling back to cache: %v", err)
		school = nil
	}
	if school != nil {
		return &ValidationResult{Status: StatusValidated, School: school}, nil
	}

	cached, err := s.cache.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return &ValidationResult{Status: StatusValidated, School: cached, FromCache: true}, nil
	}
	return &ValidationResult{Status: StatusNotFound}, nil
}
