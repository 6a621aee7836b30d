// Package model holds the merchant entity shared by every store and the HTTP layer.
package model

import (
    "unicode/utf8"

    "github.com/tinoosan/merchants/internal/errs"
)

// Field limits, counted in characters.
const (
    MinNameLen        = 1
    MaxNameLen        = 100
    MaxDescriptionLen = 500
    // MinID is the smallest identifier a store ever assigns.
    MinID int64 = 1
)

// Merchant is a stored merchant. ID is assigned by the store and never changes.
// A nil Description means absent, which is distinct from an empty string.
type Merchant struct {
    ID          int64   `json:"id"`
    Name        string  `json:"name"`
    Description *string `json:"description"`
}

// Input carries the client-supplied fields for create and update.
// Update is a full replace: a nil Description clears it.
type Input struct {
    Name        string  `json:"name"`
    Description *string `json:"description"`
}

// Validate checks field lengths and returns an error wrapping errs.ErrUnprocessable.
func (in Input) Validate() error {
    n := utf8.RuneCountInString(in.Name)
    if n < MinNameLen {
        return errs.Unprocessable("name is required")
    }
    if n > MaxNameLen {
        return errs.Unprocessable("name must be at most %d characters", MaxNameLen)
    }
    if in.Description != nil && utf8.RuneCountInString(*in.Description) > MaxDescriptionLen {
        return errs.Unprocessable("description must be at most %d characters", MaxDescriptionLen)
    }
    return nil
}

// ValidateID rejects identifiers below MinID.
func ValidateID(id int64) error {
    if id < MinID {
        return errs.Unprocessable("id must be >= %d", MinID)
    }
    return nil
}

// FromInput builds the record stored under id. The description is copied so
// the result never aliases caller memory.
func FromInput(id int64, in Input) Merchant {
    return Merchant{ID: id, Name: in.Name, Description: CloneString(in.Description)}
}

// Clone returns a deep copy of m.
func (m Merchant) Clone() Merchant {
    m.Description = CloneString(m.Description)
    return m
}

// CloneString copies a nullable string.
func CloneString(s *string) *string {
    if s == nil { return nil }
    v := *s
    return &v
}
