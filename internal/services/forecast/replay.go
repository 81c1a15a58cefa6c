package forecast

import (
	"errors"
	"fmt"

	"github.com/bobmcallan/augur/internal/models"
)

// replayForecast re-runs a steps-ahead forecast from a stored snapshot. The
// recursion mirrors arima.Model.Predict over the saved differenced series
// and residuals, so a replayed forecast matches the one produced at
// training time.
func replayForecast(a *models.ModelArtifact, steps int) ([]float64, error) {
	if steps < 1 {
		return nil, errors.New("steps must be at least 1")
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", models.ArtifactKey(a.Symbol, a.Kind), err)
	}

	y := a.DiffSeries
	n := len(y)

	extY := make([]float64, n+steps)
	copy(extY, y)

	extResiduals := make([]float64, n+steps)
	copy(extResiduals, a.Residuals)

	for h := 0; h < steps; h++ {
		t := n + h
		pred := a.Intercept

		for i := 0; i < a.P && t-i-1 >= 0; i++ {
			pred += a.ARCoeffs[i] * (extY[t-i-1] - a.Intercept)
		}

		// Future residuals are expected to be 0
		for i := 0; i < a.Q && t-i-1 >= 0 && t-i-1 < n; i++ {
			pred += a.MACoeffs[i] * extResiduals[t-i-1]
		}

		extY[t] = pred
		extResiduals[t] = 0
	}

	forecasts := extY[n:]

	// Integrate back to the original scale through the saved tail
	for i := 0; i < a.D; i++ {
		lastVal := a.SeriesTail[i]
		for j := range forecasts {
			if j == 0 {
				forecasts[j] += lastVal
			} else {
				forecasts[j] += forecasts[j-1]
			}
		}
	}

	return forecasts, nil
}
