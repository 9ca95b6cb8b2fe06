package repos

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	m "garchvar/models"
	q "garchvar/queries"
)

func (pg *Postgres) InsertModelParameters(ctx context.Context, records []*m.ModelParameterRecord) (int64, error) {
	columns := []string{
		"run_id", "asset", "omega", "alpha", "beta", "persistence", "nu",
	}

	entries := make([][]any, len(records))
	for i, rec := range records {
		entries[i] = []any{
			rec.RunId, rec.Asset, rec.Omega, rec.Alpha, rec.Beta, rec.Persistence, rec.Nu,
		}
	}

	return pg.BulkInsert(ctx, "model_parameters", columns, entries)
}

func (pg *Postgres) GetModelParametersByRunId(ctx context.Context, runId int32) ([]*m.ModelParameterRecord, error) {
	sql := q.Get(q.QueryHelper.Select.ModelParametersByRunId)
	args := pgx.NamedArgs{
		"run_id": runId,
	}

	res, err := Query[m.ModelParameterRecord](ctx, pg, sql, args)
	if err != nil {
		return nil, fmt.Errorf("unable to query model parameters for run %d: %w", runId, err)
	}
	return res, nil
}
