package repository

import (
	"database/sql"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time using RFC3339.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// parseNullableString converts a sql.NullString to a *string.
func parseNullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// emptyToNull stores an empty string as SQL NULL so that "unset" and "set to
// empty" stay indistinguishable, matching the write-once comment contract.
func emptyToNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
