package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goarima/arima"
	"github.com/sartorproj/goarima/timeseries"

	"github.com/bobmcallan/augur/internal/interfaces"
	"github.com/bobmcallan/augur/internal/models"
)

// Horizon is the forecast length and the size of the held-out test window.
const Horizon = 30

// MinObservations is the shortest closing series accepted for training: the
// held-out window plus the p+d+q+10 points the largest order needs to fit.
const MinObservations = Horizon + 14

// modelOrder pairs a model kind with its fixed (p,d,q) order.
type modelOrder struct {
	kind    models.ModelKind
	p, d, q int
}

var modelOrders = []modelOrder{
	{models.ModelMA, 0, 0, 1},
	{models.ModelARMA, 2, 0, 1},
	{models.ModelARIMA, 2, 1, 1},
}

// trainOutcome carries one fitted model's products: its snapshot, the
// 30-step forecast from the training cut, and the held-out error.
type trainOutcome struct {
	artifact *models.ModelArtifact
	forecast []float64
	rmse     float64
}

// train splits closes into train/test, fits the three models on the train
// slice, forecasts the horizon, and scores each forecast against the test
// slice.
func (s *Service) train(symbol string, closes []float64) (map[models.ModelKind]*trainOutcome, error) {
	if len(closes) < MinObservations {
		return nil, fmt.Errorf("%s has %d observations, need at least %d: %w",
			symbol, len(closes), MinObservations, interfaces.ErrInsufficientHistory)
	}

	trainSlice := closes[:len(closes)-Horizon]
	testSlice := closes[len(closes)-Horizon:]

	outcomes := make(map[models.ModelKind]*trainOutcome, len(modelOrders))
	for _, order := range modelOrders {
		model := arima.New(order.p, order.d, order.q)
		if err := model.Fit(timeseries.New(trainSlice)); err != nil {
			return nil, fmt.Errorf("fit %s (%d,%d,%d) for %s: %w",
				order.kind, order.p, order.d, order.q, symbol, err)
		}

		forecast, err := model.Predict(Horizon)
		if err != nil {
			return nil, fmt.Errorf("forecast %s for %s: %w", order.kind, symbol, err)
		}

		outcomes[order.kind] = &trainOutcome{
			artifact: snapshot(symbol, order, model, trainSlice),
			forecast: forecast,
			rmse:     rmse(testSlice, forecast),
		}
	}

	return outcomes, nil
}

// snapshot captures the fitted state needed to replay forecasts without
// refitting: the coefficients, the differenced training series with its
// residuals, and the last d undifferenced values (most recent first) that
// integration consumes.
func snapshot(symbol string, order modelOrder, model *arima.Model, train []float64) *models.ModelArtifact {
	diff := timeseries.New(train)
	for i := 0; i < order.d; i++ {
		diff = diff.Diff()
	}

	tail := make([]float64, order.d)
	for i := 0; i < order.d; i++ {
		tail[i] = train[len(train)-1-i]
	}

	return &models.ModelArtifact{
		Symbol:     symbol,
		Kind:       order.kind,
		P:          order.p,
		D:          order.d,
		Q:          order.q,
		ARCoeffs:   append([]float64(nil), model.ARCoeffs...),
		MACoeffs:   append([]float64(nil), model.MACoeffs...),
		Intercept:  model.Intercept,
		Variance:   model.Variance,
		DiffSeries: append([]float64(nil), diff.Values...),
		Residuals:  model.Residuals(),
		SeriesTail: tail,
		TrainedAt:  time.Now(),
	}
}

// rmse is the root mean squared error between actual and predicted values.
func rmse(actual, predicted []float64) float64 {
	n := len(actual)
	if len(predicted) < n {
		n = len(predicted)
	}
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := actual[i] - predicted[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}
