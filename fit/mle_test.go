package fit

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"
)

// simulateGarchT generates a GARCH(1,1) series with standardized Student-t
// innovations and known parameters, seeded so runs are reproducible.
func simulateGarchT(n int, p Parameters, seed uint64) []float64 {
	src := rand.NewPCG(seed, 1)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: p.Nu, Src: src}

	// standardized t has variance nu/(nu-2), rescale draws to unit variance
	scale := math.Sqrt((p.Nu - 2) / p.Nu)

	returns := make([]float64, n)
	h := p.Omega / (1 - p.Alpha - p.Beta) // unconditional variance
	for t := range n {
		if t > 0 {
			prev := returns[t-1]
			h = p.Omega + p.Alpha*prev*prev + p.Beta*h
		}
		returns[t] = math.Sqrt(h) * scale * tDist.Rand()
	}

	return returns
}

func Test_MLEFitter_RecoversSimulatedParameters(t *testing.T) {
	truth := Parameters{Omega: 0.10, Alpha: 0.08, Beta: 0.88, Nu: 8}
	returns := simulateGarchT(4000, truth, 42)

	fitted, err := NewMLEFitter().Fit(returns)
	if err != nil {
		t.Fatalf("fit failed on well behaved simulated series: %v", err)
	}

	if fitted.Omega <= 0 {
		t.Errorf("omega should be positive, got %v", fitted.Omega)
	}
	if fitted.Nu <= 2 {
		t.Errorf("nu should exceed 2, got %v", fitted.Nu)
	}
	if fitted.Alpha < 0 || fitted.Alpha > 0.5 {
		t.Errorf("alpha far from truth %v, got %v", truth.Alpha, fitted.Alpha)
	}
	if fitted.Beta < 0.5 || fitted.Beta > 1.1 {
		t.Errorf("beta far from truth %v, got %v", truth.Beta, fitted.Beta)
	}

	// persistence is the best identified quantity, hold it tighter
	if math.Abs(fitted.Persistence()-truth.Persistence()) > 0.15 {
		t.Errorf("persistence expected near %v, got %v", truth.Persistence(), fitted.Persistence())
	}
}

func Test_MLEFitter_ErrorsOnDegenerateSeries(t *testing.T) {
	flat := make([]float64, 500) // all zero, no variance to model

	if _, err := NewMLEFitter().Fit(flat); err == nil {
		t.Fatal("expected an error fitting a zero variance series")
	}

	if _, err := NewMLEFitter().Fit([]float64{0.5}); err == nil {
		t.Fatal("expected an error fitting a single observation")
	}
}

func Test_Parameters_Persistence(t *testing.T) {
	p := Parameters{Alpha: 0.07, Beta: 0.91}
	if math.Abs(p.Persistence()-0.98) > 1e-12 {
		t.Fatalf("persistence expected 0.98, got %v", p.Persistence())
	}
}
