package models

import "github.com/google/uuid"

// IDLength is the width of every entity identifier. The platform has
// always used short human-pasteable ids (course codes are read out loud
// in classrooms).
const IDLength = 5

// NewID returns a fresh 5-character identifier.
func NewID() string {
	return uuid.NewString()[:IDLength]
}
