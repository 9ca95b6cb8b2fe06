package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// MLEFitter maximizes the Student-t GARCH(1,1) log likelihood with
// Nelder-Mead over an unconstrained reparameterization:
//
//	omega = exp(x0), alpha = exp(x1), beta = exp(x2), nu = 2 + exp(x3)
//
// so positivity and nu > 2 hold by construction and the optimizer never has
// to deal with bound constraints.
type MLEFitter struct {
	MaxEvaluations int
}

func NewMLEFitter() *MLEFitter {
	return &MLEFitter{MaxEvaluations: 5000}
}

func (f *MLEFitter) Fit(returns []float64) (Parameters, error) {
	if len(returns) < 2 {
		return Parameters{}, fmt.Errorf("need at least 2 returns to fit, got %d", len(returns))
	}

	sample := stat.Variance(returns, nil)
	if sample <= 0 || math.IsNaN(sample) || math.IsInf(sample, 0) {
		return Parameters{}, fmt.Errorf("return series has no usable variance (%v)", sample)
	}

	// textbook starting point: alpha 0.05, beta 0.90, omega matching the
	// sample variance at that persistence, nu 8
	x0 := []float64{
		math.Log(0.05 * sample),
		math.Log(0.05),
		math.Log(0.90),
		math.Log(8.0 - 2.0),
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			return negLogLikelihood(returns, sample, decode(x))
		},
	}

	settings := &optimize.Settings{FuncEvaluations: f.MaxEvaluations}
	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return Parameters{}, fmt.Errorf("garch mle did not converge: %w", err)
	}
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		return Parameters{}, fmt.Errorf("garch mle diverged, objective is %v", result.F)
	}

	return decode(result.X), nil
}

func decode(x []float64) Parameters {
	return Parameters{
		Omega: math.Exp(x[0]),
		Alpha: math.Exp(x[1]),
		Beta:  math.Exp(x[2]),
		Nu:    2 + math.Exp(x[3]),
	}
}

// negLogLikelihood evaluates the standardized Student-t GARCH(1,1) negative
// log likelihood. The pre-sample variance is the sample variance of the whole
// series, the usual initialization for estimation. Any non-finite or
// non-positive conditional variance makes the candidate infeasible.
func negLogLikelihood(returns []float64, sample float64, p Parameters) float64 {
	if p.Omega <= 0 || p.Alpha < 0 || p.Beta < 0 || p.Nu <= 2 {
		return math.Inf(1)
	}

	// constant term of the standardized t density, per observation
	constant := lgamma((p.Nu+1)/2) - lgamma(p.Nu/2) - 0.5*math.Log(math.Pi*(p.Nu-2))

	h := sample
	ll := 0.0
	for t, r := range returns {
		if t > 0 {
			prev := returns[t-1]
			h = p.Omega + p.Alpha*prev*prev + p.Beta*h
		}
		if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			return math.Inf(1)
		}

		z := r * r / ((p.Nu - 2) * h)
		ll += constant - 0.5*math.Log(h) - 0.5*(p.Nu+1)*math.Log1p(z)
	}

	return -ll
}

func lgamma(v float64) float64 {
	lg, _ := math.Lgamma(v)
	return lg
}
