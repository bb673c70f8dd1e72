// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// TypedRecord is implemented by domain types that know which collection
// they live in.
type TypedRecord interface {
	Identifiable
	Store() StoreName
}

// TransactionType enumerates CSP transaction channels.
type TransactionType string

const (
	TransactionAEPS          TransactionType = "AEPS"
	TransactionBBPS          TransactionType = "BBPS"
	TransactionCash          TransactionType = "Cash"
	TransactionWithdrawal    TransactionType = "Withdrawal"
	TransactionDirectBenefit TransactionType = "Direct Benefit"
)

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "Completed"
	TransactionPending   TransactionStatus = "Pending"
	TransactionFailed    TransactionStatus = "Failed"
)

// Transaction is a banking-correspondent transaction.
type Transaction struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id,omitempty"`
	TxnType     TransactionType   `json:"txn_type,omitempty"`
	Amount      int64             `json:"amount"`
	Status      TransactionStatus `json:"status,omitempty"`
	Timestamp   *time.Time        `json:"timestamp,omitempty"`
	GPSLat      *float64          `json:"gps_lat,omitempty"`
	GPSLong     *float64          `json:"gps_long,omitempty"`
	Description *string           `json:"description,omitempty"`
	ReferenceID *string           `json:"reference_id,omitempty"`
	CSPAgentID  *string           `json:"csp_agent_id,omitempty"`
}

func (t Transaction) RecordID() string { return t.ID }
func (Transaction) Store() StoreName   { return StoreTransactions }

// AuditStatus is the outcome of a field audit.
type AuditStatus string

const (
	AuditPending      AuditStatus = "Pending"
	AuditCompleted    AuditStatus = "Completed"
	AuditNonCompliant AuditStatus = "NonCompliant"
)

// Audit is a field audit of a CSP point.
type Audit struct {
	ID            string          `json:"id"`
	AuditorID     string          `json:"auditor_id,omitempty"`
	CSPID         string          `json:"csp_id,omitempty"`
	Photos        []string        `json:"photos,omitempty"`
	GPSLat        *float64        `json:"gps_lat,omitempty"`
	GPSLong       *float64        `json:"gps_long,omitempty"`
	Timestamp     *time.Time      `json:"timestamp,omitempty"`
	Hash          *string         `json:"hash,omitempty"`
	Status        AuditStatus     `json:"status,omitempty"`
	Findings      json.RawMessage `json:"findings,omitempty"`
	ScheduledDate *time.Time      `json:"scheduled_date,omitempty"`
}

func (a Audit) RecordID() string { return a.ID }
func (Audit) Store() StoreName   { return StoreAudits }

// Complaint is a customer complaint.
type Complaint struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id,omitempty"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Status      string     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	AssignedTo  *string    `json:"assigned_to,omitempty"`
}

func (c Complaint) RecordID() string { return c.ID }
func (Complaint) Store() StoreName   { return StoreComplaints }
