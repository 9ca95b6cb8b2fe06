package core

import (
	"time"

	"github.com/rs/zerolog"

	"garchvar/fit"
	m "garchvar/models"
)

// Table is a set of named columns aligned to a shared date index. NaN marks
// an undefined cell (missing observation or pre-seed entry).
type Table struct {
	Names []string
	Cols  [][]float64
}

func (t *Table) addColumn(name string, values []float64) {
	t.Names = append(t.Names, name)
	t.Cols = append(t.Cols, values)
}

// AssetParameters is one row of the parameter summary table.
type AssetParameters struct {
	Asset       string  `json:"asset"`
	Omega       float64 `json:"omega"`
	Alpha       float64 `json:"alpha"`
	Beta        float64 `json:"beta"`
	Persistence float64 `json:"persistence"`
	Nu          float64 `json:"nu"`
}

// ResultTables holds everything the batch produced: four date-indexed tables
// with one column per successfully processed asset, plus the parameter
// summary. Skipped assets appear nowhere.
type ResultTables struct {
	Dates   []time.Time
	Prices  Table
	Returns Table
	Stdevs  Table
	VaR     Table
	Params  []AssetParameters

	Skipped int
}

// PriceFrame is the parsed input: a master date index plus one raw cell
// column per asset, all aligned to Dates.
type PriceFrame struct {
	Dates  []time.Time
	Assets []string
	Cells  [][]string
}

// ProgressFunc is notified once per asset, in input order, regardless of
// whether the asset succeeded or was skipped.
type ProgressFunc func(done, total int)

// assetOutcome is the explicit result of one asset's pipeline: either a full
// success with every payload set, or a skip with a reason. There is no
// partial success.
type assetOutcome struct {
	Asset   string
	Skip    m.SkipReason
	Err     error
	Prices  Series
	Returns Series
	Stdev   []float64
	VaR     []float64
	Params  fit.Parameters
}

// RunBatch processes every asset sequentially, in column order. One asset's
// failure never aborts another: a skip advances the loop and leaves no trace
// in the tables. The only record of a skip is the log.
func RunBatch(frame *PriceFrame, fitter fit.Fitter, progress ProgressFunc, log zerolog.Logger) *ResultTables {
	res := &ResultTables{Dates: frame.Dates}
	index := dateIndex(frame.Dates)
	total := len(frame.Assets)

	for i, asset := range frame.Assets {
		outcome := processAsset(asset, frame.Dates, frame.Cells[i], fitter)
		if outcome.Skip != m.SkipNone {
			res.Skipped++
			log.Debug().
				Str("asset", asset).
				Stringer("reason", outcome.Skip).
				Err(outcome.Err).
				Msg("asset skipped")
		} else {
			res.merge(index, outcome)
		}

		if progress != nil {
			progress(i+1, total)
		}
	}

	return res
}

func processAsset(asset string, dates []time.Time, cells []string, fitter fit.Fitter) assetOutcome {
	prices, returns, skip := PrepareSeries(dates, cells)
	if skip != m.SkipNone {
		return assetOutcome{Asset: asset, Skip: skip}
	}

	params, err := fitter.Fit(returns.Values)
	if err != nil {
		// the returns are discarded too, a fit failure excludes the asset
		// from every table, not just the parameter summary
		return assetOutcome{Asset: asset, Skip: m.SkipFitFailed, Err: err}
	}

	variance := ReconstructVariancePath(returns.Values, params)
	stdev := StdevPath(variance)
	vaR := VaRPath(stdev, params.Nu)

	return assetOutcome{
		Asset:   asset,
		Prices:  prices,
		Returns: returns,
		Stdev:   stdev,
		VaR:     vaR,
		Params:  params,
	}
}

// merge appends one fully successful asset to the shared tables. It is only
// ever called after every stage of the asset's pipeline has succeeded.
func (rt *ResultTables) merge(index map[time.Time]int, o assetOutcome) {
	n := len(rt.Dates)
	rt.Prices.addColumn(o.Asset, alignByDate(index, n, o.Prices.Dates, o.Prices.Values))
	rt.Returns.addColumn(o.Asset, alignByDate(index, n, o.Returns.Dates, o.Returns.Values))
	rt.Stdevs.addColumn(o.Asset, alignByDate(index, n, o.Returns.Dates, o.Stdev))
	rt.VaR.addColumn(o.Asset, alignByDate(index, n, o.Returns.Dates, o.VaR))
	rt.Params = append(rt.Params, AssetParameters{
		Asset:       o.Asset,
		Omega:       o.Params.Omega,
		Alpha:       o.Params.Alpha,
		Beta:        o.Params.Beta,
		Persistence: o.Params.Persistence(),
		Nu:          o.Params.Nu,
	})
}

func dateIndex(dates []time.Time) map[time.Time]int {
	index := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		index[d] = i
	}
	return index
}

// alignByDate spreads a dense series onto the master date index, NaN
// everywhere the series has no observation.
func alignByDate(index map[time.Time]int, n int, dates []time.Time, values []float64) []float64 {
	col := nanSlice(n)
	for i, d := range dates {
		if j, ok := index[d]; ok {
			col[j] = values[i]
		}
	}
	return col
}
