package core

import (
	"math"
	"strconv"
	"strings"
	"time"

	m "garchvar/models"
)

// MissingToken is the placeholder the upstream price feed writes for days
// without a quote.
const MissingToken = "-"

// Series is a dense date-aligned value series, dates strictly increasing.
type Series struct {
	Dates  []time.Time
	Values []float64
}

func (s Series) Len() int {
	return len(s.Values)
}

// CleanPrices coerces one raw asset column to numbers. Non-numeric cells,
// including the missing placeholder, are dropped outright, so the result is
// dense even across gaps. Remaining observations are treated as
// chronologically meaningful, a documented simplification of the source data.
func CleanPrices(dates []time.Time, cells []string) Series {
	out := Series{
		Dates:  make([]time.Time, 0, len(cells)),
		Values: make([]float64, 0, len(cells)),
	}

	for i, cell := range cells {
		v, ok := parsePrice(cell)
		if !ok {
			continue
		}
		out.Dates = append(out.Dates, dates[i])
		out.Values = append(out.Values, v)
	}

	return out
}

func parsePrice(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == MissingToken {
		return 0, false
	}

	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// LogReturns derives the scaled return series, one entry shorter than its
// source: r[t] = 100 * ln(p[t] / p[t-1]), the undefined first return dropped.
func LogReturns(prices Series) Series {
	if prices.Len() < 2 {
		return Series{}
	}

	out := Series{
		Dates:  make([]time.Time, prices.Len()-1),
		Values: make([]float64, prices.Len()-1),
	}

	for i := 1; i < prices.Len(); i++ {
		out.Dates[i-1] = prices.Dates[i]
		out.Values[i-1] = 100 * math.Log(prices.Values[i]/prices.Values[i-1])
	}

	return out
}

// PrepareSeries runs cleaning and the observation floors for one asset.
// A violated floor is a skip, not an error: the asset is simply absent from
// every output.
func PrepareSeries(dates []time.Time, cells []string) (prices, returns Series, skip m.SkipReason) {
	prices = CleanPrices(dates, cells)
	if prices.Len() < m.MinObservations {
		return prices, Series{}, m.SkipShortPrices
	}

	returns = LogReturns(prices)
	if returns.Len() < m.MinObservations {
		return prices, returns, m.SkipShortReturns
	}

	return prices, returns, m.SkipNone
}
