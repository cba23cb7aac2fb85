package model

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus enum constants
const (
	RunStatusRunning   = "RUNNING"
	RunStatusSucceeded = "SUCCEEDED"
	RunStatusFailed    = "FAILED"
)

// IngestRun tracks one ingestion attempt for a document: when it ran,
// whether it committed, and what it wrote. Written outside the snapshot
// transaction so a failed run still leaves a trace.
type IngestRun struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DocumentID    string     `gorm:"column:document_id;type:varchar(30);not null;index" json:"document_id"`
	Status        string     `gorm:"type:varchar(20);not null;index" json:"status"` // RUNNING, SUCCEEDED, FAILED
	Error         string     `gorm:"type:text" json:"error,omitempty"`
	CategoryCount int        `gorm:"not null;default:0" json:"category_count"`
	LineItemCount int        `gorm:"not null;default:0" json:"line_item_count"`
	ItemCount     int        `gorm:"not null;default:0" json:"item_count"` // item-detail records fetched
	StartedAt     time.Time  `gorm:"not null;index" json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
}

func (IngestRun) TableName() string { return "ingest_runs" }
