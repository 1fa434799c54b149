package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/remiges-tech/logharbour/logharbour"

	"github.com/remiges-tech/usersvc/metrics"
)

// MetricOperations counts user operations by op and outcome.
const MetricOperations = "users_operations_total"

// Outcome labels of MetricOperations.
const (
	outcomeSuccess    = "success"
	outcomeInvalidAge = "invalid_age"
	outcomeNotFound   = "not_found"
	outcomeError      = "error"
)

// Service applies the user rules on top of a Repository.
type Service struct {
	repo    Repository
	cfg     Config
	logger  *logharbour.Logger
	metrics metrics.Metrics
	now     func() time.Time
}

// NewService returns a Service storing users in repo. m may be nil.
func NewService(repo Repository, cfg Config, logger *logharbour.Logger, m metrics.Metrics) *Service {
	if m != nil {
		m.RegisterWithLabels(MetricOperations, "Counter", "User operations by outcome", []string{"op", "outcome"})
	}
	return &Service{
		repo:    repo,
		cfg:     cfg,
		logger:  logger.WithModule("users"),
		metrics: m,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for age checks.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AgeLimit returns the configured minimum age.
func (s *Service) AgeLimit() int {
	return s.cfg.AgeLimit
}

// Create stores a new user after checking the age limit. Any identifier on
// candidate is ignored; the Repository assigns one.
func (s *Service) Create(ctx context.Context, candidate User) (User, error) {
	const op = "create"

	if _, err := IsAboveAgeLimit(candidate.BirthDate, s.cfg.AgeLimit, s.now()); err != nil {
		return User{}, s.fail(op, 0, err)
	}

	candidate.ID = 0
	stored, err := s.repo.Save(ctx, candidate)
	if err != nil {
		return User{}, s.fail(op, 0, err)
	}

	s.logger.LogDataChange("User created", logharbour.ChangeInfo{
		Entity:  "User",
		Op:      "Create",
		Changes: changes(User{}, stored),
	})
	s.succeed(op, stored.ID)
	return stored, nil
}

// Update replaces every field of the user with identifier id except the
// identifier itself. The age limit is not checked again.
func (s *Service) Update(ctx context.Context, id int64, replacement User) (User, error) {
	const op = "update"

	existing, err := s.find(ctx, id)
	if err != nil {
		return User{}, s.fail(op, id, err)
	}

	stored, err := s.save(ctx, Replace(existing, replacement))
	if err != nil {
		return User{}, s.fail(op, id, err)
	}

	s.logger.LogDataChange("User replaced", logharbour.ChangeInfo{
		Entity:  "User",
		Op:      "Update",
		Changes: changes(existing, stored),
	})
	s.succeed(op, id)
	return stored, nil
}

// Patch applies a partial update to the user with identifier id. A sent
// birth date below the age limit rejects the whole patch.
func (s *Service) Patch(ctx context.Context, id int64, p Patch) (User, error) {
	const op = "patch"

	existing, err := s.find(ctx, id)
	if err != nil {
		return User{}, s.fail(op, id, err)
	}

	merged, err := Merge(existing, p, s.cfg.AgeLimit, s.now())
	if err != nil {
		return User{}, s.fail(op, id, err)
	}

	stored, err := s.save(ctx, merged)
	if err != nil {
		return User{}, s.fail(op, id, err)
	}

	s.logger.LogDataChange("User patched", logharbour.ChangeInfo{
		Entity:  "User",
		Op:      "Patch",
		Changes: changes(existing, stored),
	})
	s.succeed(op, id)
	return stored, nil
}

// Delete removes the user with identifier id. Deleting an unknown
// identifier succeeds.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "delete"

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.fail(op, id, err)
	}

	s.logger.LogDataChange("User deleted", logharbour.ChangeInfo{
		Entity:  "User",
		Op:      "Delete",
		Changes: []logharbour.ChangeDetail{{Field: "id", OldVal: id, NewVal: nil}},
	})
	s.succeed(op, id)
	return nil
}

// FindByBirthDateRange returns the users born between from and to, both
// included, in insertion order. Callers check that from is before to.
func (s *Service) FindByBirthDateRange(ctx context.Context, from, to time.Time) ([]User, error) {
	const op = "range"

	found, err := s.repo.FindByBirthDateBetween(ctx, from, to)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}
	s.succeed(op, 0)
	return found, nil
}

// ListAll returns every user in insertion order.
func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	const op = "list"

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail(op, 0, err)
	}
	s.succeed(op, 0)
	return all, nil
}

func (s *Service) find(ctx context.Context, id int64) (User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return User{}, &NotFoundError{ID: id}
	}
	if err != nil {
		return User{}, fmt.Errorf("find user %d: %w", id, err)
	}
	return existing, nil
}

// save maps a record that vanished between find and save to NotFoundError.
func (s *Service) save(ctx context.Context, u User) (User, error) {
	stored, err := s.repo.Save(ctx, u)
	if errors.Is(err, ErrNotFound) {
		return User{}, &NotFoundError{ID: u.ID}
	}
	return stored, err
}

func (s *Service) succeed(op string, id int64) {
	s.logger.Info().LogActivity("User operation completed", map[string]any{"op": op, "id": id})
	s.record(op, outcomeSuccess)
}

// fail logs err and counts it under its outcome. It returns err unchanged.
func (s *Service) fail(op string, id int64, err error) error {
	data := map[string]any{"op": op, "id": id, "error": err.Error()}

	var ageErr *InvalidAgeError
	var notFoundErr *NotFoundError
	switch {
	case errors.As(err, &ageErr):
		s.logger.Warn().LogActivity("User rejected below age limit", data)
		s.record(op, outcomeInvalidAge)
	case errors.As(err, &notFoundErr):
		s.logger.Warn().LogActivity("User not found", data)
		s.record(op, outcomeNotFound)
	default:
		s.logger.Error(err).LogActivity("User operation failed", data)
		s.record(op, outcomeError)
	}
	return err
}

func (s *Service) record(op, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordWithLabels(MetricOperations, 1, op, outcome)
	}
}
