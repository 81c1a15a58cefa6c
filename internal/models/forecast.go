package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ModelKind identifies one of the three fitted forecasting models
type ModelKind string

const (
	ModelMA    ModelKind = "ma"
	ModelARMA  ModelKind = "arma"
	ModelARIMA ModelKind = "arima"
)

// ModelKinds lists all kinds in response order
var ModelKinds = []ModelKind{ModelMA, ModelARMA, ModelARIMA}

// ArtifactKey returns the deterministic artifact key for a symbol and kind,
// e.g. "AAPL_arima".
func ArtifactKey(symbol string, kind ModelKind) string {
	return fmt.Sprintf("%s_%s", symbol, kind)
}

// ModelArtifact is the serialized state of one fitted model, sufficient to
// replay an h-step forecast without refitting. DiffSeries holds the
// d-times-differenced training series (the training series itself when d=0),
// Residuals the in-sample fit residuals over DiffSeries, and SeriesTail the
// last D observations of the undifferenced training series, most recent
// first, consumed by integration.
type ModelArtifact struct {
	Symbol     string    `json:"symbol" validate:"required"`
	Kind       ModelKind `json:"kind" validate:"required,oneof=ma arma arima"`
	P          int       `json:"p" validate:"gte=0"`
	D          int       `json:"d" validate:"gte=0"`
	Q          int       `json:"q" validate:"gte=0"`
	ARCoeffs   []float64 `json:"ar_coeffs"`
	MACoeffs   []float64 `json:"ma_coeffs"`
	Intercept  float64   `json:"intercept"`
	Variance   float64   `json:"variance" validate:"gte=0"`
	DiffSeries []float64 `json:"diff_series" validate:"required,min=1"`
	Residuals  []float64 `json:"residuals" validate:"required,min=1"`
	SeriesTail []float64 `json:"series_tail"`
	TrainedAt  time.Time `json:"trained_at"`
}

// Validate checks artifact consistency before persisting or after loading.
func (a *ModelArtifact) Validate() error {
	validate := validator.New()
	if err := validate.Struct(a); err != nil {
		return err
	}
	if len(a.ARCoeffs) != a.P {
		return fmt.Errorf("artifact %s: %d AR coefficients for order p=%d", ArtifactKey(a.Symbol, a.Kind), len(a.ARCoeffs), a.P)
	}
	if len(a.MACoeffs) != a.Q {
		return fmt.Errorf("artifact %s: %d MA coefficients for order q=%d", ArtifactKey(a.Symbol, a.Kind), len(a.MACoeffs), a.Q)
	}
	if len(a.SeriesTail) != a.D {
		return fmt.Errorf("artifact %s: series tail holds %d values, need d=%d", ArtifactKey(a.Symbol, a.Kind), len(a.SeriesTail), a.D)
	}
	if len(a.Residuals) != len(a.DiffSeries) {
		return fmt.Errorf("artifact %s: %d residuals for %d series values", ArtifactKey(a.Symbol, a.Kind), len(a.Residuals), len(a.DiffSeries))
	}
	return nil
}

// StockModelRecord is the persistent per-symbol training record. One record
// per resolved symbol; every write fully replaces the prior record.
type StockModelRecord struct {
	Symbol        string    `json:"symbol" validate:"required"`
	MAArtifact    string    `json:"ma_artifact" validate:"required"`
	ARMAArtifact  string    `json:"arma_artifact" validate:"required"`
	ARIMAArtifact string    `json:"arima_artifact" validate:"required"`
	RMSEMA        float64   `json:"rmse_ma" validate:"gte=0"`
	RMSEARMA      float64   `json:"rmse_arma" validate:"gte=0"`
	RMSEARIMA     float64   `json:"rmse_arima" validate:"gte=0"`
	LastTrained   time.Time `json:"last_trained"`
}

// Validate checks the record against its validation tags.
func (r *StockModelRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ArtifactFor returns the stored artifact key for a model kind.
func (r *StockModelRecord) ArtifactFor(kind ModelKind) string {
	switch kind {
	case ModelMA:
		return r.MAArtifact
	case ModelARMA:
		return r.ARMAArtifact
	case ModelARIMA:
		return r.ARIMAArtifact
	}
	return ""
}

// RMSEFor returns the stored RMSE for a model kind.
func (r *StockModelRecord) RMSEFor(kind ModelKind) float64 {
	switch kind {
	case ModelMA:
		return r.RMSEMA
	case ModelARMA:
		return r.RMSEARMA
	case ModelARIMA:
		return r.RMSEARIMA
	}
	return 0
}

// RMSEByModel carries the held-out error per model in the predict response
type RMSEByModel struct {
	MA    float64 `json:"MA"`
	ARMA  float64 `json:"ARMA"`
	ARIMA float64 `json:"ARIMA"`
}

// StockPrediction is the response shape for the predict endpoint
type StockPrediction struct {
	Symbol          string      `json:"symbol"`
	MAPrediction    []float64   `json:"MA_Prediction"`
	ARMAPrediction  []float64   `json:"ARMA_Prediction"`
	ARIMAPrediction []float64   `json:"ARIMA_Prediction"`
	RMSE            RMSEByModel `json:"RMSE"`
}
