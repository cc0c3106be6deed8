// Package valueobjects holds the small immutable identifier and scalar
// types shared by every entity in domain/core/entities.
package valueobjects

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// NodeID is an opaque node identifier, accepted as an arbitrary
// non-empty string rather than restricted to UUIDs: agents and
// ingestion assign human-readable slugs as often as UUIDs.
type NodeID struct {
	value string
}

// NewNodeID creates a new random NodeID.
func NewNodeID() NodeID {
	return NodeID{value: uuid.New().String()}
}

// NewNodeIDFromString wraps an existing id string.
func NewNodeIDFromString(id string) (NodeID, error) {
	if id == "" {
		return NodeID{}, errors.New("node id cannot be empty")
	}
	return NodeID{value: id}, nil
}

// String returns the underlying id.
func (id NodeID) String() string { return id.value }

// Equals reports whether two ids are the same.
func (id NodeID) Equals(other NodeID) bool { return id.value == other.value }

// IsZero reports whether this is the zero-value id.
func (id NodeID) IsZero() bool { return id.value == "" }

// MarshalJSON implements json.Marshaler.
func (id NodeID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *NodeID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id.value = s
	return nil
}

// EdgeID is an opaque edge identifier.
type EdgeID struct {
	value string
}

// NewEdgeID creates a new random EdgeID.
func NewEdgeID() EdgeID {
	return EdgeID{value: uuid.New().String()}
}

// NewEdgeIDFromString wraps an existing id string.
func NewEdgeIDFromString(id string) (EdgeID, error) {
	if id == "" {
		return EdgeID{}, errors.New("edge id cannot be empty")
	}
	return EdgeID{value: id}, nil
}

func (id EdgeID) String() string           { return id.value }
func (id EdgeID) Equals(other EdgeID) bool { return id.value == other.value }
func (id EdgeID) IsZero() bool             { return id.value == "" }

func (id EdgeID) MarshalJSON() ([]byte, error) { return json.Marshal(id.value) }

func (id *EdgeID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id.value = s
	return nil
}

// NewID is a generic id generator used by vectors, chunks and proposals,
// all of which don't need a distinct value-object wrapper beyond a string.
func NewID() string {
	return uuid.New().String()
}
