package requests

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// Repository is the backend holding reopen/delete requests.
type Repository interface {
	ListRequests(ctx context.Context, entity model.EntityRef) ([]model.Request, error)
	GetRequest(ctx context.Context, id int) (model.Request, error)
	CreateRequest(ctx context.Context, in model.RequestInput) (model.Request, error)
	DecideRequest(ctx context.Context, id int, d model.Decision, note string) (model.Request, error)
}

// PendingError is returned when a new request is refused because the entity
// already has one pending. History holds every request for the entity.
type PendingError struct {
	Pending model.Request
	History []model.Request
}

func (e *PendingError) Error() string {
	return fmt.Sprintf("%s %d already has pending request %d",
		e.Pending.EntityType, e.Pending.EntityID, e.Pending.ID)
}

// Service gates request creation and applies decisions.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a requests Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// History returns every request filed for entity.
func (s *Service) History(ctx context.Context, entity model.EntityRef) ([]model.Request, error) {
	history, err := s.repo.ListRequests(ctx, entity)
	if err != nil {
		return nil, fmt.Errorf("listing requests for %s %d: %w", entity.Type, entity.ID, err)
	}
	return history, nil
}

// Create files a new request unless one is already pending for the same
// entity, in which case the repository is not called.
func (s *Service) Create(ctx context.Context, in model.RequestInput) (model.Request, error) {
	if err := validateInput(in); err != nil {
		return model.Request{}, err
	}

	history, err := s.History(ctx, in.Entity())
	if err != nil {
		return model.Request{}, err
	}
	if pending, ok := Pending(history); ok {
		return model.Request{}, &PendingError{Pending: pending, History: history}
	}

	created, err := s.repo.CreateRequest(ctx, in)
	if err != nil {
		return model.Request{}, fmt.Errorf("creating request: %w", err)
	}
	slog.Info("request created",
		"id", created.ID,
		"entity_type", created.EntityType,
		"entity_id", created.EntityID,
		"kind", created.Kind)
	return created, nil
}

// Decide approves or rejects request id. Requests that are no longer pending
// are refused before the repository is called.
func (s *Service) Decide(ctx context.Context, id int, d model.Decision, note string) (model.Request, error) {
	current, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return model.Request{}, fmt.Errorf("fetching request %d: %w", id, err)
	}

	if _, err := Apply(current, d, s.now(), note); err != nil {
		return model.Request{}, err
	}

	decided, err := s.repo.DecideRequest(ctx, id, d, note)
	if err != nil {
		return model.Request{}, fmt.Errorf("deciding request %d: %w", id, err)
	}
	slog.Info("request decided", "id", id, "decision", d, "status", decided.Status)
	return decided, nil
}

func validateInput(in model.RequestInput) error {
	switch in.EntityType {
	case model.EntityAttendanceSession, model.EntityLessonPlan:
	default:
		return fmt.Errorf("unknown entity type %q", in.EntityType)
	}
	switch in.Kind {
	case model.RequestReopen, model.RequestDelete:
	default:
		return fmt.Errorf("unknown request kind %q", in.Kind)
	}
	if in.EntityID <= 0 {
		return fmt.Errorf("invalid entity id %d", in.EntityID)
	}
	return nil
}
