package models

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is one bounded text window of a record's canonical text, the unit
// of semantic indexing. Chunks are written once under a fresh identifier
// and read back only through similarity search.
type Chunk struct {
	ID        uuid.UUID `db:"id"`
	RecordID  string    `db:"record_id"`
	FileName  string    `db:"file_name"`
	Seq       int       `db:"seq"`
	Content   string    `db:"content"`
	Embedding []float32 `db:"embedding"`
	CreatedAt time.Time `db:"created_at"`
}

// RetrievedChunk is the read-only projection a similarity search returns,
// annotated with the owning record's provenance.
type RetrievedChunk struct {
	Content  string
	RecordID string
	FileName string
	Distance float64
}
