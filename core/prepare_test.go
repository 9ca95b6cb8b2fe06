package core

import (
	"math"
	"strconv"
	"testing"
	"time"

	ex "garchvar/extensions"
	m "garchvar/models"
)

func mockDates(n int) []time.Time {
	dates := make([]time.Time, n)
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range n {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func priceCells(prices []float64) []string {
	cells := make([]string, len(prices))
	for i, p := range prices {
		cells[i] = strconv.FormatFloat(p, 'f', -1, 64)
	}
	return cells
}

func Test_CleanPrices_DropsMissingAndNonNumeric(t *testing.T) {
	dates := mockDates(6)
	cells := []string{"100.5", "-", "", "abc", "101.25", " 102 "}

	series := CleanPrices(dates, cells)

	ex.AssertAreEqual(t, "dense length", 3, series.Len())
	ex.AssertAreEqual(t, "first value", 100.5, series.Values[0])
	ex.AssertAreEqual(t, "second value", 101.25, series.Values[1])
	ex.AssertAreEqual(t, "third value", 102.0, series.Values[2])

	// the surviving dates are the ones whose cells parsed
	ex.AssertAreEqual(t, "first date", dates[0], series.Dates[0])
	ex.AssertAreEqual(t, "second date", dates[4], series.Dates[1])
	ex.AssertAreEqual(t, "third date", dates[5], series.Dates[2])
}

func Test_LogReturns_ScaledNaturalLog(t *testing.T) {
	dates := mockDates(3)
	prices := Series{Dates: dates, Values: []float64{100, 110, 99}}

	returns := LogReturns(prices)

	ex.AssertAreEqual(t, "length one shorter", 2, returns.Len())
	ex.AssertAreEqual(t, "first return", 100*math.Log(110.0/100.0), returns.Values[0])
	ex.AssertAreEqual(t, "second return", 100*math.Log(99.0/110.0), returns.Values[1])

	// a return is dated by the later of its two prices
	ex.AssertAreEqual(t, "first return date", dates[1], returns.Dates[0])

	short := LogReturns(Series{Dates: dates[:1], Values: []float64{100}})
	ex.AssertAreEqual(t, "single price has no returns", 0, short.Len())
}

func Test_PrepareSeries_ObservationFloors(t *testing.T) {
	// 99 valid prices: below the price floor
	dates := mockDates(99)
	_, _, skip := PrepareSeries(dates, priceCells(constantPrices(99)))
	ex.AssertAreEqual(t, "99 prices skip", m.SkipShortPrices, skip)

	// 100 valid prices: passes the price floor, but only 99 returns
	dates = mockDates(100)
	_, _, skip = PrepareSeries(dates, priceCells(constantPrices(100)))
	ex.AssertAreEqual(t, "100 prices skip", m.SkipShortReturns, skip)

	// 101 valid prices: 100 returns, both floors pass
	dates = mockDates(101)
	prices, returns, skip := PrepareSeries(dates, priceCells(constantPrices(101)))
	ex.AssertAreEqual(t, "101 prices skip", m.SkipNone, skip)
	ex.AssertAreEqual(t, "prices kept", 101, prices.Len())
	ex.AssertAreEqual(t, "returns derived", 100, returns.Len())
}

func Test_PrepareSeries_GapsCountAgainstTheFloor(t *testing.T) {
	// 120 rows but only 99 parse: the dense series is what the floor sees
	dates := mockDates(120)
	cells := priceCells(constantPrices(120))
	for i := 0; i < 21; i++ {
		cells[i*5] = MissingToken
	}

	_, _, skip := PrepareSeries(dates, cells)
	ex.AssertAreEqual(t, "sparse column skip", m.SkipShortPrices, skip)
}

func constantPrices(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100
	}
	return out
}
