package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// AnalysisRun is one batch execution, inserted as running and updated to
// success or failure when the batch resolves.
type AnalysisRun struct {
	Id              int32       `db:"id" json:"id"`
	Filename        string      `db:"filename" json:"filename"`
	Status          string      `db:"status" json:"status"`
	StartedAt       time.Time   `db:"started_at" json:"startedAt"`
	FinishedAt      null.Time   `db:"finished_at" json:"finishedAt"`
	ErrorMessage    null.String `db:"error_message" json:"errorMessage"`
	AssetsProcessed null.Int    `db:"assets_processed" json:"assetsProcessed"`
	AssetsSkipped   null.Int    `db:"assets_skipped" json:"assetsSkipped"`
}

// ModelParameterRecord is one fitted parameter set persisted for audit.
type ModelParameterRecord struct {
	RunId       int32   `db:"run_id"`
	Asset       string  `db:"asset"`
	Omega       float64 `db:"omega"`
	Alpha       float64 `db:"alpha"`
	Beta        float64 `db:"beta"`
	Persistence float64 `db:"persistence"`
	Nu          float64 `db:"nu"`
}
