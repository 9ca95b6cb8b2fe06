package core

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"garchvar/fit"
	m "garchvar/models"
)

// ReconstructVariancePath recomputes the conditional variance path from a
// return series and fitted parameters. Entries before the seed are NaN, the
// seed at index SeedWindow-1 is the population variance of the first
// SeedWindow returns, and everything after follows the GARCH(1,1) recursion
//
//	h[t] = omega + alpha*r[t-1]^2 + beta*h[t-1]
//
// evaluated in order with no clamping, so a numerically unstable parameter
// set surfaces as NaN/Inf instead of being silently corrected.
func ReconstructVariancePath(returns []float64, p fit.Parameters) []float64 {
	T := len(returns)
	h := nanSlice(T)

	if T < m.SeedWindow {
		return h
	}

	h[m.SeedWindow-1] = populationVariance(returns[:m.SeedWindow])
	for t := m.SeedWindow; t < T; t++ {
		h[t] = p.Omega + p.Alpha*returns[t-1]*returns[t-1] + p.Beta*h[t-1]
	}

	return h
}

// populationVariance divides by N, not N-1. The seed substitutes for an
// unobservable pre-sample variance, so the divisor-N estimator is the
// contract, spelling this out instead of reusing the unbiased stat.Variance.
func populationVariance(x []float64) float64 {
	mean := stat.Mean(x, nil)

	var ss float64
	for _, v := range x {
		d := v - mean
		ss += d * d
	}

	return ss / float64(len(x))
}

// StdevPath is the elementwise square root of the variance path. NaN
// entries stay NaN, a negative variance from an unstable fit becomes NaN
// here rather than being clamped.
func StdevPath(variance []float64) []float64 {
	out := make([]float64, len(variance))
	for i, v := range variance {
		out[i] = math.Sqrt(v)
	}
	return out
}

// TailQuantile is the standard Student-t inverse CDF at the VaR level with
// nu degrees of freedom. It is a single negative scalar per asset.
func TailQuantile(nu float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: nu}
	return dist.Quantile(m.VaRLevel)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// VaRPath scales the stdev path by the left-tail quantile, producing a
// negative daily VaR in the same percentage-return units as the inputs.
func VaRPath(stdev []float64, nu float64) []float64 {
	q := TailQuantile(nu)

	out := make([]float64, len(stdev))
	for i, s := range stdev {
		out[i] = q * s
	}
	return out
}
