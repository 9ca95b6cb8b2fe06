package fit

// Parameters are the fitted GARCH(1,1)-t coefficients for one asset.
// Omega is the variance intercept, Alpha the squared-return loading, Beta the
// lagged-variance loading and Nu the Student-t degrees of freedom.
type Parameters struct {
	Omega float64 `json:"omega"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Nu    float64 `json:"nu"`
}

// Persistence is alpha+beta. It is recorded for audit only, never validated:
// a non-stationary fit is allowed to flow through the variance recursion and
// surface as NaN/Inf rather than being clamped or rejected.
func (p Parameters) Persistence() float64 {
	return p.Alpha + p.Beta
}

// Fitter estimates GARCH(1,1)-t parameters from a scaled return series.
// The batch calls Fit once per asset, sequentially. An error means the asset
// is excluded from every output, there is no partial result.
type Fitter interface {
	Fit(returns []float64) (Parameters, error)
}
