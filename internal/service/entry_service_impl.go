package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mathieuvidal/examplan/internal/contract"
	"github.com/mathieuvidal/examplan/internal/domain"
	"github.com/mathieuvidal/examplan/internal/repository"
)

type entryService struct {
	plans    repository.PlanRepo
	observer OpObserver
}

// NewEntryService builds the entry status use case.
func NewEntryService(plans repository.PlanRepo, observers ...OpObserver) EntryService {
	return &entryService{
		plans:    plans,
		observer: observerOrNoop(observers),
	}
}

func (s *entryService) SetStatus(ctx context.Context, entryID string, status domain.EntryStatus) (err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "entry_set_status", started, err, map[string]any{
			"entry_id": entryID, "status": string(status),
		})
	}()

	entry, err := s.plans.GetEntry(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &contract.PlanError{Code: contract.PlanErrNotFound, Message: "plan entry not found: " + entryID}
		}
		return fmt.Errorf("loading plan entry: %w", err)
	}

	now := time.Now().UTC()
	switch status {
	case domain.StatusInProgress:
		err = entry.MarkInProgress(now)
	case domain.StatusCompleted:
		err = entry.MarkCompleted(now)
	case domain.StatusPending:
		err = entry.Reset(now)
	default:
		err = fmt.Errorf("unknown entry status %q", status)
	}
	if err != nil {
		return &contract.PlanError{Code: contract.PlanErrValidation, Message: err.Error()}
	}

	if err := s.plans.UpdateStatus(ctx, entryID, entry.Status, now); err != nil {
		return fmt.Errorf("updating entry status: %w", err)
	}
	return nil
}
