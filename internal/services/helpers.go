package services

import (
	"time"

	"github.com/aarondl/null/v8"

	apperrors "drilltrack/pkg/errors"
)

// parseDate turns an optional yyyy-mm-dd field into a *time.Time.
// Absent or null values come back as nil, not an error.
func parseDate(v null.String) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, v.String)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date %q, expected yyyy-mm-dd", v.String)
	}
	return &t, nil
}

func parseRequiredDate(raw string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date %q, expected yyyy-mm-dd", raw)
	}
	return t, nil
}

// nullableID maps an explicit null to a SQL NULL and a value to the
// value, for clearing rig/crew references.
func nullableID(v null.String) interface{} {
	if !v.Valid || v.String == "" {
		return nil
	}
	return v.String
}
