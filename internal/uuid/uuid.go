// Package uuid wraps google/uuid for use in query and URI parameters.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID is a google/uuid UUID that gin can bind from form, query and
// URI parameters.
type UUID struct {
	google_uuid.UUID
}

// Nil is the empty UUID, used for unset parameters.
var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

// UnmarshalParam implements gin's binding.BindUnmarshaler.
// An empty parameter yields Nil.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}

// IsSet reports if the UUID holds a value other than Nil.
func (u UUID) IsSet() bool {
	return u != Nil
}
