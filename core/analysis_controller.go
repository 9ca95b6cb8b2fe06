package core

import (
	"bytes"
	"fmt"
	"io"
	"time"

	ex "garchvar/extensions"
	m "garchvar/models"
)

// RunAnalysis is the top-level failure boundary around one batch: parse the
// uploaded workbook, process every asset, render the report. Any error here
// aborts the whole request and produces no output. Per-asset failures never
// reach this level, they resolve inside RunBatch as skips.
func (sc *ServiceContext) RunAnalysis(upload io.Reader, filename string) ([]byte, error) {
	start := time.Now()
	sc.Log.Info().Str("filename", filename).Msg("received analysis request")

	runId, err := sc.insertRunHistory(filename)
	if err != nil {
		return nil, err
	}

	frame, err := ReadPriceFrame(upload)
	if err != nil {
		return nil, sc.markRunAsFailure(runId, fmt.Errorf("error reading price data: %w", err))
	}

	sc.Log.Info().
		Int("assets", len(frame.Assets)).
		Str("firstDate", ex.FmtShort(frame.Dates[0])).
		Str("lastDate", ex.FmtShort(frame.Dates[len(frame.Dates)-1])).
		Msg("price data cleaned")

	progress := func(done, total int) {
		sc.Log.Debug().Int("done", done).Int("total", total).Msg("asset processed")
	}

	res := RunBatch(frame, sc.Fitter, progress, sc.Log)

	if err := sc.persistParameters(runId, res.Params); err != nil {
		return nil, sc.markRunAsFailure(runId, err)
	}

	var buf bytes.Buffer
	if err := WriteReport(res, &buf); err != nil {
		return nil, sc.markRunAsFailure(runId, fmt.Errorf("error rendering report: %w", err))
	}

	if err := sc.markRunAsSuccess(runId, len(res.Params), res.Skipped); err != nil {
		return nil, err
	}

	sc.Log.Info().
		Int("processed", len(res.Params)).
		Int("skipped", res.Skipped).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")

	return buf.Bytes(), nil
}

// Run history is optional: with no database configured every persistence
// step is a no-op and the service still produces reports.

func (sc *ServiceContext) insertRunHistory(filename string) (int32, error) {
	if sc.Postgres == nil {
		return 0, nil
	}

	runId, err := sc.Postgres.InsertAnalysisRun(sc.Context, filename)
	if err != nil {
		return 0, fmt.Errorf("error inserting analysis run: %w", err)
	}
	return runId, nil
}

func (sc *ServiceContext) persistParameters(runId int32, params []AssetParameters) error {
	if sc.Postgres == nil || len(params) == 0 {
		return nil
	}

	records := make([]*m.ModelParameterRecord, len(params))
	for i, p := range params {
		records[i] = &m.ModelParameterRecord{
			RunId:       runId,
			Asset:       p.Asset,
			Omega:       p.Omega,
			Alpha:       p.Alpha,
			Beta:        p.Beta,
			Persistence: p.Persistence,
			Nu:          p.Nu,
		}
	}

	if _, err := sc.Postgres.InsertModelParameters(sc.Context, records); err != nil {
		return fmt.Errorf("error persisting model parameters: %w", err)
	}
	return nil
}

func (sc *ServiceContext) markRunAsSuccess(runId int32, processed, skipped int) error {
	if sc.Postgres == nil {
		return nil
	}
	return sc.Postgres.UpdateAnalysisRunAsSuccess(sc.Context, runId, processed, skipped)
}

// markRunAsFailure records the failure and hands the original error back so
// the caller reports the analysis failure, not the bookkeeping.
func (sc *ServiceContext) markRunAsFailure(runId int32, cause error) error {
	if sc.Postgres == nil {
		return cause
	}
	if err := sc.Postgres.UpdateAnalysisRunAsFailure(sc.Context, runId, cause.Error()); err != nil {
		sc.Log.Error().Err(err).Int32("runId", runId).Msg("could not mark run as failed")
	}
	return cause
}
