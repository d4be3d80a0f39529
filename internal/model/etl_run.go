package model

import (
	"time"

	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

const (
	ETLRunStatusRunning   = "running"
	ETLRunStatusSucceeded = "succeeded"
	ETLRunStatusPartial   = "partial"
	ETLRunStatusFailed    = "failed"
)

// ETLRun is the audit record of one pipeline invocation.
type ETLRun struct {
	bun.BaseModel `bun:"etl_runs,alias:er"`

	RunID         string      `bun:",pk" json:"id"`
	Source        string      `json:"source"`
	Status        string      `json:"status"`
	Rows          int         `json:"rows"`
	Activities    int         `json:"activities"`
	FailedBatches int         `json:"failedBatches"`
	Error         null.String `json:"error,omitempty"`
	StartedAt     time.Time   `bun:",notnull" json:"startedAt"`
	FinishedAt    *time.Time  `json:"finishedAt,omitempty"`
}
