package models

import (
	"time"

	"github.com/google/uuid"
)

// AgentAnswer is the ranking agent's terminal output: a textual
// justification plus the de-duplicated record identifiers it cited.
type AgentAnswer struct {
	Answer string   `json:"answer"`
	Files  []string `json:"files"`
}

// AuditRecord is one immutable append-only entry of the query log. Created
// exactly once per completed query, never updated or deleted.
type AuditRecord struct {
	RequestID uuid.UUID   `db:"request_id"`
	Timestamp time.Time   `db:"created_at"`
	Caller    string      `db:"caller"`
	Query     string      `db:"query"`
	Response  AgentAnswer `db:"response"`
}
