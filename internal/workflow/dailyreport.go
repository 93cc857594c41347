package workflow

import (
	"strings"

	apperrors "drilltrack/pkg/errors"
)

type ReportStatus string

const (
	ReportDraft     ReportStatus = "draft"
	ReportSubmitted ReportStatus = "submitted"
	ReportApproved  ReportStatus = "approved"
	ReportRejected  ReportStatus = "rejected"
)

// reportTransitions: field crews submit (and resubmit after rejection),
// managers approve or reject. approved -> submitted is the single
// backward edge out of approved ("return for revision"). There is no
// approved -> rejected and no rejected -> approved.
var reportTransitions = map[ReportStatus][]ReportStatus{
	ReportDraft:     {ReportSubmitted},
	ReportSubmitted: {ReportApproved, ReportRejected},
	ReportApproved:  {ReportSubmitted},
	ReportRejected:  {ReportSubmitted},
}

// notesRequired marks the edges that may not be taken without review
// notes: rejection, and pulling an approved report back for revision.
var notesRequired = map[ReportStatus]map[ReportStatus]bool{
	ReportSubmitted: {ReportRejected: true},
	ReportApproved:  {ReportSubmitted: true},
}

func ParseReportStatus(s string) (ReportStatus, error) {
	status := ReportStatus(s)
	if _, ok := reportTransitions[status]; !ok {
		return "", apperrors.NewValidationError("unknown daily report status %q", s)
	}
	return status, nil
}

func (s ReportStatus) String() string { return string(s) }

func CanTransitionReport(from, to ReportStatus) bool {
	for _, allowed := range reportTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionReport validates the edge and the review-notes requirement,
// returning the new status.
func TransitionReport(from, to ReportStatus, reviewNotes string) (ReportStatus, error) {
	if !CanTransitionReport(from, to) {
		return from, apperrors.NewInvalidTransitionError("daily report", string(from), string(to))
	}
	if notesRequired[from][to] && strings.TrimSpace(reviewNotes) == "" {
		return from, apperrors.ErrMissingReviewNotes
	}
	return to, nil
}
