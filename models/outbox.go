// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Action is the kind of mutation recorded in the outbox.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ErrUnknownAction is returned when an outbox row carries an action outside
// of create/update/delete.
var ErrUnknownAction = errors.New("unknown outbox action")

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// Mutation is the payload of an [OutboxEntry]: either a [FullRecord]
// (create/update) or an [IDOnly] reference (delete).
type Mutation interface {
	// RecordID returns the id of the record the mutation targets.
	RecordID() string
	isMutation()
}

// FullRecord carries the complete record for create and update actions.
type FullRecord struct {
	Record Record
}

func (f FullRecord) RecordID() string { return f.Record.ID }
func (FullRecord) isMutation()        {}

// IDOnly carries only the id of a deleted record.
type IDOnly struct {
	ID string `json:"id"`
}

func (i IDOnly) RecordID() string { return i.ID }
func (IDOnly) isMutation()        {}

// OutboxEntry is one pending mutation not yet confirmed by the remote API.
// Entries are created once and removed once confirmed; they are never
// modified in place.
type OutboxEntry struct {
	// ID is synthetic: <store>_<record id>_<unix nanos>, unique even for
	// repeated edits of the same record.
	ID string

	// Table is the target collection.
	Table StoreName

	// Action is the mutation kind.
	Action Action

	// Data is the mutation payload.
	Data Mutation

	// Timestamp is the creation time and defines drain order.
	Timestamp time.Time
}

// NewOutboxEntry builds an entry for a create/update of record.
func NewOutboxEntry(table StoreName, action Action, record Record, at time.Time) OutboxEntry {
	return OutboxEntry{
		ID:        OutboxEntryID(table, record.ID, at),
		Table:     table,
		Action:    action,
		Data:      FullRecord{Record: record},
		Timestamp: at,
	}
}

// NewDeleteOutboxEntry builds an entry for the deletion of id.
func NewDeleteOutboxEntry(table StoreName, id string, at time.Time) OutboxEntry {
	return OutboxEntry{
		ID:        OutboxEntryID(table, id, at),
		Table:     table,
		Action:    ActionDelete,
		Data:      IDOnly{ID: id},
		Timestamp: at,
	}
}

// OutboxEntryID composes the synthetic outbox id.
func OutboxEntryID(table StoreName, recordID string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d", table, recordID, at.UnixNano())
}

// EncodeMutation serialises m for persistence.
func EncodeMutation(m Mutation) ([]byte, error) {
	switch v := m.(type) {
	case FullRecord:
		return v.Record.MarshalJSON()
	case IDOnly:
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("unsupported mutation type %T", m)
	}
}

// DecodeMutation rebuilds the mutation for action from its persisted form.
func DecodeMutation(action Action, data []byte) (Mutation, error) {
	switch action {
	case ActionCreate, ActionUpdate:
		var r Record
		if err := r.UnmarshalJSON(data); err != nil {
			return nil, err
		}
		return FullRecord{Record: r}, nil
	case ActionDelete:
		var id IDOnly
		if err := json.Unmarshal(data, &id); err != nil {
			return nil, fmt.Errorf("decode delete mutation: %w", err)
		}
		if id.ID == "" {
			return nil, ErrEmptyRecordID
		}
		return id, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}
