// Package requests implements the reopen/delete request workflow for
// attendance sessions and lesson plans.
package requests

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledgerdesk/ledgerdesk/internal/model"
)

// ErrNotPending is returned when deciding a request that was already decided.
var ErrNotPending = errors.New("request is not pending")

// Approve moves a pending request to approved. It does not modify r.
func Approve(r model.Request, at time.Time, note string) (model.Request, error) {
	return decide(r, model.StatusApproved, at, note)
}

// Reject moves a pending request to rejected. It does not modify r.
func Reject(r model.Request, at time.Time, note string) (model.Request, error) {
	return decide(r, model.StatusRejected, at, note)
}

// Apply runs the transition named by d.
func Apply(r model.Request, d model.Decision, at time.Time, note string) (model.Request, error) {
	switch d {
	case model.DecisionApprove:
		return Approve(r, at, note)
	case model.DecisionReject:
		return Reject(r, at, note)
	default:
		return model.Request{}, fmt.Errorf("unknown decision %q", d)
	}
}

func decide(r model.Request, to model.RequestStatus, at time.Time, note string) (model.Request, error) {
	if r.Status != model.StatusPending {
		return model.Request{}, fmt.Errorf("%w: request %d is %s", ErrNotPending, r.ID, r.Status)
	}
	r.Status = to
	r.DecidedAt = &at
	r.DecisionNote = note
	return r, nil
}

// Pending returns the pending request in history, if any.
func Pending(history []model.Request) (model.Request, bool) {
	for _, r := range history {
		if r.Status == model.StatusPending {
			return r, true
		}
	}
	return model.Request{}, false
}

// CanCreate reports whether a new request may be filed for an entity with
// the given history: only when none of its requests is pending.
func CanCreate(history []model.Request) bool {
	_, pending := Pending(history)
	return !pending
}
