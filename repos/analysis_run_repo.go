package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	m "garchvar/models"
	q "garchvar/queries"
)

func (pg *Postgres) InsertAnalysisRun(ctx context.Context, filename string) (int32, error) {
	sql := q.Get(q.QueryHelper.Insert.AnalysisRun)
	args := pgx.NamedArgs{
		"filename": filename,
	}

	var runId int32
	if err := pg.db.QueryRow(ctx, sql, args).Scan(&runId); err != nil {
		return 0, fmt.Errorf("error inserting analysis run: %w", err)
	}

	return runId, nil
}

func (pg *Postgres) UpdateAnalysisRunAsSuccess(ctx context.Context, runId int32, processed, skipped int) error {
	sql := q.Get(q.QueryHelper.Update.AnalysisRunSuccess)
	args := pgx.NamedArgs{
		"id":               runId,
		"assets_processed": processed,
		"assets_skipped":   skipped,
	}

	if _, err := pg.db.Exec(ctx, sql, args); err != nil {
		return fmt.Errorf("error updating analysis run %d as success: %w", runId, err)
	}
	return nil
}

func (pg *Postgres) UpdateAnalysisRunAsFailure(ctx context.Context, runId int32, errorMessage string) error {
	cleanErrorMessage := strings.TrimSpace(errorMessage)
	if cleanErrorMessage == "" {
		return fmt.Errorf("error message is required if analysis run %d is failing", runId)
	}

	sql := q.Get(q.QueryHelper.Update.AnalysisRunFailure)
	args := pgx.NamedArgs{
		"id":            runId,
		"error_message": cleanErrorMessage,
	}

	if _, err := pg.db.Exec(ctx, sql, args); err != nil {
		return fmt.Errorf("error updating analysis run %d as failure: %w", runId, err)
	}
	return nil
}

func (pg *Postgres) GetAnalysisRuns(ctx context.Context) ([]*m.AnalysisRun, error) {
	sql := q.Get(q.QueryHelper.Select.AnalysisRuns)

	res, err := Query[m.AnalysisRun](ctx, pg, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to query analysis runs: %w", err)
	}
	return res, nil
}
