package queries

import (
	"embed"
	"fmt"
)

//go:embed insert/*.sql select/*.sql update/*.sql
var Files embed.FS

// ^^^ the go:embed directive converts the sql files to binary data at compile
// time so the queries ship inside the binary

type InsertQueries struct {
	AnalysisRun string
}

type SelectQueries struct {
	AnalysisRuns           string
	ModelParametersByRunId string
}

type UpdateQueries struct {
	AnalysisRunFailure string
	AnalysisRunSuccess string
}

type QueryHelperStruct struct {
	Insert InsertQueries
	Select SelectQueries
	Update UpdateQueries
}

var QueryHelper = QueryHelperStruct{
	Insert: InsertQueries{
		AnalysisRun: "insert/analysis_run.sql",
	},
	Select: SelectQueries{
		AnalysisRuns:           "select/analysis_runs.sql",
		ModelParametersByRunId: "select/model_parameters_by_run_id.sql",
	},
	Update: UpdateQueries{
		AnalysisRunFailure: "update/analysis_run_failure.sql",
		AnalysisRunSuccess: "update/analysis_run_success.sql",
	},
}

func Get(path string) string {
	content, err := Files.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("error reading query file: %w", err))
	}

	return string(content)
}
