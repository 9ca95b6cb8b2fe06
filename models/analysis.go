package models

// Both floors come from the variance seed: the recursion needs a full seed
// window of returns before the first conditional variance exists.
const (
	MinObservations = 100
	SeedWindow      = 100
)

// VaRLevel is the left-tail probability for the daily VaR quantile.
const VaRLevel = 0.01

// SkipReason says why an asset was excluded from the batch output.
// A skipped asset contributes nothing to any result table.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipShortPrices
	SkipShortReturns
	SkipFitFailed
)

func (s SkipReason) String() string {
	switch s {
	case SkipNone:
		return "none"
	case SkipShortPrices:
		return "fewer than 100 valid prices"
	case SkipShortReturns:
		return "fewer than 100 returns"
	case SkipFitFailed:
		return "model fit failed"
	default:
		return "unknown"
	}
}
