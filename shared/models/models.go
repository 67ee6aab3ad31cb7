package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID represents a unique identifier
type ID string

// GenerateUUID creates a new UUID
func GenerateUUID() ID {
	return ID(uuid.New().String())
}

// NewID creates an ID from string
func NewID(id string) (ID, error) {
	_, err := uuid.Parse(id)
	if err != nil {
		return "", err
	}
	return ID(id), nil
}

// NewTransactionID builds a saga attempt identifier: creation time in unix millis
// followed by a random UUID, so ids sort roughly by start time.
func NewTransactionID(now time.Time) ID {
	return ID(fmt.Sprintf("%d_%s", now.UnixMilli(), uuid.New().String()))
}

// String returns string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty reports whether the id carries no value
func (id ID) IsEmpty() bool {
	return id == ""
}

// Timestamps represents creation and update times
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTimestamps creates new timestamps
func NewTimestamps() Timestamps {
	now := time.Now()
	return Timestamps{
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update updates the UpdatedAt timestamp
func (t Timestamps) Update() Timestamps {
	t.UpdatedAt = time.Now()
	return t
}
