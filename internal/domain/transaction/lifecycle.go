package transaction

import (
	"math"
	"strings"
	"time"
)

// transitions is the full lifecycle table. draft and in_progress are both
// admin-owned editing states; returned_for_revision goes back through
// resubmitted so the queue can tell a revision from a first submission.
var transitions = map[Status][]Status{
	StatusDraft:       {StatusInProgress, StatusSubmitted},
	StatusInProgress:  {StatusDraft, StatusSubmitted},
	StatusSubmitted:   {StatusApproved, StatusRejected, StatusReturned},
	StatusResubmitted: {StatusApproved, StatusRejected, StatusReturned},
	StatusReturned:    {StatusResubmitted},
	// approved and rejected are terminal
}

// CanTransition reports whether from -> to is a legal lifecycle move.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// GuardTransition returns a TransitionError when from -> to is not legal.
func GuardTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// SubmitTarget maps an editable state onto the state submission produces.
func SubmitTarget(from Status) (Status, error) {
	switch from {
	case StatusDraft, StatusInProgress:
		return StatusSubmitted, nil
	case StatusReturned:
		return StatusResubmitted, nil
	}
	return "", &TransitionError{From: from, To: StatusSubmitted}
}

// Editable reports whether the owning admin may still mutate the transaction.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusInProgress || s == StatusReturned
}

// Terminal reports whether no further transition can ever apply.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// InQueue reports whether the transaction is awaiting an approver decision.
func (s Status) InQueue() bool { return s == StatusSubmitted || s == StatusResubmitted }

// Decisions an approver may take on a queued transaction.
var DecisionOutcomes = []Status{StatusApproved, StatusRejected, StatusReturned}

func IsDecisionOutcome(s Status) bool {
	for _, d := range DecisionOutcomes {
		if d == s {
			return true
		}
	}
	return false
}

// MinRejectReasonLen is the shortest reject reason accepted.
const MinRejectReasonLen = 10

// ValidateRejectReason enforces the mandatory reason on rejection.
func ValidateRejectReason(reason string) error {
	if len(strings.TrimSpace(reason)) < MinRejectReasonLen {
		return Invalid("reject reason must be at least %d characters", MinRejectReasonLen)
	}
	return nil
}

// OCRTolerance is the maximum allowed relative deviation between the
// manually entered amount and the OCR-derived amount. Exactly 5% passes.
const OCRTolerance = 0.05

// WithinOCRTolerance compares the entered amount against the OCR amount.
// A missing or non-positive OCR amount imposes no constraint.
func WithinOCRTolerance(amount float64, ocr *float64) bool {
	if ocr == nil || *ocr <= 0 {
		return true
	}
	return math.Abs(amount-*ocr) <= OCRTolerance**ocr+1e-9
}

// DraftWindow is the rolling lifetime of an unsubmitted draft.
const DraftWindow = 24 * time.Hour

// NearDeadlineHours is the alerting threshold on the draft countdown.
const NearDeadlineHours = 6

// HoursRemaining computes the draft countdown: hours left in the 24-hour
// window, ceiling-rounded when positive, floored at zero. Pure.
func HoursRemaining(createdAt, now time.Time) int {
	rem := DraftWindow - now.Sub(createdAt)
	if rem <= 0 {
		return 0
	}
	return int(math.Ceil(rem.Hours()))
}

// NearDeadline reports a live draft with NearDeadlineHours or less remaining.
func NearDeadline(createdAt, now time.Time) bool {
	h := HoursRemaining(createdAt, now)
	return h > 0 && h <= NearDeadlineHours
}

// Expired reports a draft whose window has fully elapsed. Expired drafts are
// flagged, never auto-deleted.
func Expired(createdAt, now time.Time) bool {
	return HoursRemaining(createdAt, now) == 0
}
