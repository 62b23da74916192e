package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
)

// ReasonField names the stored field a transition reason is written to.
type ReasonField string

const (
	ReasonNone              ReasonField = ""
	ReasonDeclined          ReasonField = "declinedReason"
	ReasonCompletedDeclined ReasonField = "completedDeclinedReason"
	ReasonWithdrawn         ReasonField = "withdrawnReason"
	ReasonUnqualified       ReasonField = "unqualifiedReason"
)

// statusReasonFields are the reasons owned by a status. Each is cleared when
// the opportunity moves to a status that does not own it.
var statusReasonFields = []ReasonField{ReasonDeclined, ReasonCompletedDeclined, ReasonWithdrawn}

// TransitionErrorKind classifies a rejected transition.
type TransitionErrorKind string

const (
	MissingReason       TransitionErrorKind = "missing_reason"
	UnknownStatus       TransitionErrorKind = "unknown_status"
	QualificationLocked TransitionErrorKind = "qualification_locked"
)

// TransitionError is returned when a status or qualification change is rejected.
// Nothing is changed when it is returned.
type TransitionError struct {
	Kind  TransitionErrorKind
	From  Status
	To    Status
	Field ReasonField
}

func (e *TransitionError) Error() string {
	switch e.Kind {
	case MissingReason:
		return fmt.Sprintf("%s is required to move from %s to %s", e.Field, e.From, e.To)
	case QualificationLocked:
		return fmt.Sprintf("an opportunity in status %s cannot be marked unqualified", e.From)
	}
	return fmt.Sprintf("unknown status %q", e.To)
}

// Is maps the error onto the apperrors sentinels.
func (e *TransitionError) Is(target error) bool {
	if e.Kind == MissingReason {
		return target == apperrors.ErrMissingReason || target == apperrors.ErrValidation
	}
	return target == apperrors.ErrValidation
}

// TransitionState is the part of an opportunity the policy looks at.
type TransitionState struct {
	Status            Status
	CompletedDeclined bool
}

// TransitionContext carries the caller-supplied data for a transition.
type TransitionContext struct {
	Reason string
	UserID string
}

// TransitionResult is an accepted transition.
type TransitionResult struct {
	Status      Status
	ReasonField ReasonField
	Reason      string
	// ClearFields are reason fields that no longer apply after the move.
	ClearFields []ReasonField
	// EnteredSettled is set when the opportunity newly reaches settled.
	EnteredSettled bool
}

// ApplyTransition validates a requested status change. Any status may be
// requested from any other; the only enforced rule is reason capture.
func ApplyTransition(current TransitionState, requested Status, tctx TransitionContext) (TransitionResult, error) {
	if _, ok := stage(requested, false); !ok {
		return TransitionResult{}, &TransitionError{Kind: UnknownStatus, From: current.Status, To: requested}
	}

	field := reasonFieldFor(current, requested)
	reason := strings.TrimSpace(tctx.Reason)
	if field != ReasonNone && reason == "" {
		return TransitionResult{}, &TransitionError{Kind: MissingReason, From: current.Status, To: requested, Field: field}
	}

	target := requested
	if requested == StatusCompletedDeclined {
		target = StatusDeclined
	}

	res := TransitionResult{
		Status:         target,
		ReasonField:    field,
		EnteredSettled: target == StatusSettled && current.Status != StatusSettled,
	}
	if field != ReasonNone {
		res.Reason = reason
	}
	for _, f := range statusReasonFields {
		if f != field {
			res.ClearFields = append(res.ClearFields, f)
		}
	}
	return res, nil
}

func reasonFieldFor(current TransitionState, requested Status) ReasonField {
	switch requested {
	case StatusWithdrawn:
		return ReasonWithdrawn
	case StatusCompletedDeclined:
		return ReasonCompletedDeclined
	case StatusDeclined:
		if isPostDecision(current) {
			return ReasonCompletedDeclined
		}
		return ReasonDeclined
	}
	return ReasonNone
}

func isPostDecision(s TransitionState) bool {
	switch s.Status {
	case StatusSettled, StatusWithdrawn:
		return true
	case StatusDeclined:
		return s.CompletedDeclined
	}
	return false
}

// QualificationResult is an accepted change to the unqualified flag.
type QualificationResult struct {
	IsUnqualified bool
	Reason        string
}

// ApplyQualification validates setting or clearing the unqualified flag. It
// never changes status. Clearing the flag also clears its reason.
func ApplyQualification(status Status, isUnqualified bool, reason string) (QualificationResult, error) {
	if !isUnqualified {
		return QualificationResult{}, nil
	}
	if status == StatusSettled {
		return QualificationResult{}, &TransitionError{Kind: QualificationLocked, From: status, To: status}
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return QualificationResult{}, &TransitionError{Kind: MissingReason, From: status, To: status, Field: ReasonUnqualified}
	}
	return QualificationResult{IsUnqualified: true, Reason: reason}, nil
}

// SetReason writes a reason value to the named field of o.
func (o *Opportunity) SetReason(field ReasonField, value string) {
	switch field {
	case ReasonDeclined:
		o.DeclinedReason = value
	case ReasonCompletedDeclined:
		o.CompletedDeclinedReason = value
	case ReasonWithdrawn:
		o.WithdrawnReason = value
	case ReasonUnqualified:
		o.UnqualifiedReason = value
	}
}
