package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "drilltrack/pkg/errors"
)

func TestTransitionReport_SubmitPaths(t *testing.T) {
	// draft and rejected both go to submitted with no notes required
	for _, from := range []ReportStatus{ReportDraft, ReportRejected} {
		got, err := TransitionReport(from, ReportSubmitted, "")
		require.NoError(t, err, "%s -> submitted", from)
		assert.Equal(t, ReportSubmitted, got)
	}
}

func TestTransitionReport_Approve(t *testing.T) {
	// notes are optional for approval
	got, err := TransitionReport(ReportSubmitted, ReportApproved, "")
	require.NoError(t, err)
	assert.Equal(t, ReportApproved, got)

	got, err = TransitionReport(ReportSubmitted, ReportApproved, "looks good")
	require.NoError(t, err)
	assert.Equal(t, ReportApproved, got)
}

func TestTransitionReport_RejectRequiresNotes(t *testing.T) {
	got, err := TransitionReport(ReportSubmitted, ReportRejected, "")
	require.ErrorIs(t, err, apperrors.ErrMissingReviewNotes)
	assert.Equal(t, ReportSubmitted, got)

	_, err = TransitionReport(ReportSubmitted, ReportRejected, "   ")
	require.ErrorIs(t, err, apperrors.ErrMissingReviewNotes)

	got, err = TransitionReport(ReportSubmitted, ReportRejected, "footage does not match boring log")
	require.NoError(t, err)
	assert.Equal(t, ReportRejected, got)
}

func TestTransitionReport_ReturnForRevision(t *testing.T) {
	// the only backward edge out of approved, and it needs notes
	_, err := TransitionReport(ReportApproved, ReportSubmitted, "")
	require.ErrorIs(t, err, apperrors.ErrMissingReviewNotes)

	got, err := TransitionReport(ReportApproved, ReportSubmitted, "billing line B-3 needs the standby rate")
	require.NoError(t, err)
	assert.Equal(t, ReportSubmitted, got)
}

func TestTransitionReport_IllegalEdges(t *testing.T) {
	cases := []struct {
		from, to ReportStatus
	}{
		{ReportApproved, ReportRejected},
		{ReportRejected, ReportApproved},
		{ReportDraft, ReportApproved},
		{ReportDraft, ReportRejected},
		{ReportSubmitted, ReportDraft},
		{ReportApproved, ReportDraft},
	}
	for _, tc := range cases {
		got, err := TransitionReport(tc.from, tc.to, "notes present")
		require.Error(t, err, "%s -> %s should be rejected", tc.from, tc.to)
		assert.Equal(t, tc.from, got)

		var transitionErr *apperrors.InvalidTransitionError
		require.True(t, errors.As(err, &transitionErr))
	}
}

func TestParseReportStatus(t *testing.T) {
	status, err := ParseReportStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, ReportApproved, status)

	_, err = ParseReportStatus("signed-off")
	require.Error(t, err)
}
