// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for record (de)serialisation.
var (
	// ErrEmptyRecordID is returned when a record payload carries no "id" or
	// an empty one.
	ErrEmptyRecordID = errors.New("record id is empty")

	// ErrInvalidRecordPayload is returned when a payload is not a JSON object.
	ErrInvalidRecordPayload = errors.New("record payload is not a json object")
)

// Record is a domain entity as seen by the sync engine: an opaque JSON
// object identified by ID. Payload always contains the same "id" value, so
// the identifier is stable across local and remote representations.
type Record struct {
	ID      string
	Payload json.RawMessage
}

// Identifiable is implemented by every typed domain record.
type Identifiable interface {
	RecordID() string
}

// NewRecord serialises a typed domain value into a [Record].
func NewRecord[T Identifiable](v T) (Record, error) {
	if v.RecordID() == "" {
		return Record{}, ErrEmptyRecordID
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return Record{}, fmt.Errorf("marshal record %s: %w", v.RecordID(), err)
	}

	var r Record
	if err = r.UnmarshalJSON(payload); err != nil {
		return Record{}, err
	}
	if r.ID != v.RecordID() {
		return Record{}, fmt.Errorf("%w: payload id %q differs from %q", ErrInvalidRecordPayload, r.ID, v.RecordID())
	}

	return r, nil
}

// DecodeRecord unmarshals the payload of r into a typed value.
func DecodeRecord[T any](r Record) (T, error) {
	var v T
	if err := json.Unmarshal(r.Payload, &v); err != nil {
		return v, fmt.Errorf("decode record %s: %w", r.ID, err)
	}
	return v, nil
}

// MarshalJSON emits the raw payload.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Payload) == 0 {
		return json.Marshal(map[string]string{"id": r.ID})
	}
	return r.Payload, nil
}

// UnmarshalJSON keeps the raw object and extracts its "id".
func (r *Record) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrInvalidRecordPayload
	}

	var head struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(trimmed, &head); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecordPayload, err)
	}

	var id string
	if len(head.ID) == 0 || json.Unmarshal(head.ID, &id) != nil || id == "" {
		return ErrEmptyRecordID
	}

	r.ID = id
	r.Payload = append(json.RawMessage(nil), trimmed...)
	return nil
}
