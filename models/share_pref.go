package models

import (
	"database/sql/driver"
	"fmt"
)

// SharePref is the three-valued visibility preference for poll insights.
// Polls created before the preference existed carry ShareUnset, which
// behaves as shared; the zero value deliberately preserves that legacy
// default instead of overloading NULL checks at call sites.
type SharePref int

const (
	// ShareUnset means the creator never chose. Treated as shared.
	ShareUnset SharePref = 0

	// ShareShared explicitly allows anyone with the poll ID to read
	// the insights.
	ShareShared SharePref = 1

	// SharePrivate restricts insights to the poll's creator or owner.
	SharePrivate SharePref = 2
)

// Allowed reports whether non-creators may access the guarded resource.
func (s SharePref) Allowed() bool {
	return s != SharePrivate
}

// SharePrefFromBool converts an explicit boolean choice into a SharePref.
func SharePrefFromBool(shared bool) SharePref {
	if shared {
		return ShareShared
	}
	return SharePrivate
}

// Scan implements sql.Scanner. A NULL column maps to ShareUnset so that
// rows written before the preference existed keep their legacy behavior.
func (s *SharePref) Scan(src any) error {
	if src == nil {
		*s = ShareUnset
		return nil
	}

	switch v := src.(type) {
	case int64:
		*s = SharePref(v)
	case bool:
		// Rows migrated from the old boolean column.
		*s = SharePrefFromBool(v)
	default:
		return fmt.Errorf("cannot scan %T into SharePref", src)
	}

	return nil
}

// Value implements driver.Valuer. ShareUnset is stored as NULL.
func (s SharePref) Value() (driver.Value, error) {
	if s == ShareUnset {
		return nil, nil
	}

	return int64(s), nil
}
