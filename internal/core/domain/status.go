package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
)

// Status is the pipeline position of an opportunity.
type Status string

const (
	StatusDraft                 Status = "draft"
	StatusOpportunity           Status = "opportunity"
	StatusApplicationCreated    Status = "application_created"
	StatusApplicationSubmitted  Status = "application_submitted"
	StatusConditionallyApproved Status = "conditionally_approved"
	StatusApproved              Status = "approved"
	StatusDeclined              Status = "declined"
	StatusSettled               Status = "settled"
	StatusWithdrawn             Status = "withdrawn"

	// StatusCompletedDeclined is only ever requested. It is stored as StatusDeclined
	// with CompletedDeclinedReason set.
	StatusCompletedDeclined Status = "completed_declined"
)

// Stage indexes along the ordered progression. Draft sits before it.
const (
	stageDraft = iota - 1
	stageOpportunity
	stageApplicationCreated
	stageApplicationSubmitted
	stageDecision
	stageCompletion
)

const (
	draftProgressPercent   = 10
	defaultProgressPercent = 20
	progressStepPercent    = 20
)

// ParseStatus validates a raw status value. completed_declined is accepted.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(strings.ToLower(raw)))
	switch s {
	case StatusDraft, StatusOpportunity, StatusApplicationCreated, StatusApplicationSubmitted,
		StatusConditionallyApproved, StatusApproved, StatusDeclined, StatusSettled,
		StatusWithdrawn, StatusCompletedDeclined:
		return s, nil
	}
	return "", fmt.Errorf("unknown status %q: %w", raw, apperrors.ErrValidation)
}

// IsInitial reports whether an opportunity may be created in this status.
func (s Status) IsInitial() bool {
	return s == StatusDraft || s == StatusOpportunity
}

// stage returns the progression index of a status. completedDeclined places a
// declined opportunity in the completion group rather than the decision group.
func stage(s Status, completedDeclined bool) (int, bool) {
	switch s {
	case StatusDraft:
		return stageDraft, true
	case StatusOpportunity:
		return stageOpportunity, true
	case StatusApplicationCreated:
		return stageApplicationCreated, true
	case StatusApplicationSubmitted:
		return stageApplicationSubmitted, true
	case StatusConditionallyApproved, StatusApproved:
		return stageDecision, true
	case StatusDeclined:
		if completedDeclined {
			return stageCompletion, true
		}
		return stageDecision, true
	case StatusCompletedDeclined, StatusSettled, StatusWithdrawn:
		return stageCompletion, true
	}
	return 0, false
}

// ProgressPercent returns how far through the pipeline a status is.
func ProgressPercent(s Status, completedDeclined bool) int {
	idx, ok := stage(s, completedDeclined)
	if !ok {
		return defaultProgressPercent
	}
	if idx == stageDraft {
		return draftProgressPercent
	}
	return (idx + 1) * progressStepPercent
}

// IsStepCompleted reports whether the pipeline has reached or passed step.
// Draft and unknown statuses have not completed any step.
func IsStepCompleted(current Status, completedDeclined bool, step Status) bool {
	cur, ok := stage(current, completedDeclined)
	if !ok || cur == stageDraft {
		return false
	}
	target, ok := stage(step, step == StatusCompletedDeclined)
	if !ok || target == stageDraft {
		return false
	}
	return cur >= target
}
