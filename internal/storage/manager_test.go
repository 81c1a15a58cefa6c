package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bobmcallan/augur/internal/common"
	"github.com/bobmcallan/augur/internal/models"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	base := t.TempDir()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Models.Path = filepath.Join(base, "models")
	cfg.Storage.Artifacts.Path = filepath.Join(base, "artifacts")

	logger := common.NewLogger("error")
	m, err := NewManager(logger, cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestManagerCreatesBothAreas(t *testing.T) {
	base := t.TempDir()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Models.Path = filepath.Join(base, "models")
	cfg.Storage.Artifacts.Path = filepath.Join(base, "artifacts")

	m, err := NewManager(common.NewLogger("error"), cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()

	for _, dir := range []string{cfg.Storage.Models.Path, cfg.Storage.Artifacts.Path} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("%s should be a directory", dir)
		}
	}
}

func TestManagerRoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	artifact := &models.ModelArtifact{
		Symbol:     "TCS.NS",
		Kind:       models.ModelMA,
		Q:          1,
		MACoeffs:   []float64{0.42},
		ARCoeffs:   []float64{},
		Intercept:  4000.2,
		Variance:   3.1,
		DiffSeries: []float64{3990.5, 4001.0, 4005.5},
		Residuals:  []float64{0.0, 1.2, -0.8},
	}
	key := models.ArtifactKey("TCS.NS", models.ModelMA)
	if err := m.ArtifactStore().Save(ctx, key, artifact); err != nil {
		t.Fatalf("ArtifactStore Save: %v", err)
	}

	record := &models.StockModelRecord{
		Symbol:        "TCS.NS",
		MAArtifact:    key,
		ARMAArtifact:  "TCS.NS_arma",
		ARIMAArtifact: "TCS.NS_arima",
		RMSEMA:        10.2,
		RMSEARMA:      8.4,
		RMSEARIMA:     6.6,
	}
	if err := m.ModelStore().Upsert(ctx, record); err != nil {
		t.Fatalf("ModelStore Upsert: %v", err)
	}

	gotRecord, err := m.ModelStore().Get(ctx, "TCS.NS")
	if err != nil {
		t.Fatalf("ModelStore Get: %v", err)
	}
	gotArtifact, err := m.ArtifactStore().Load(ctx, gotRecord.MAArtifact)
	if err != nil {
		t.Fatalf("ArtifactStore Load via record: %v", err)
	}
	if gotArtifact.Intercept != 4000.2 {
		t.Errorf("Intercept = %v, want 4000.2", gotArtifact.Intercept)
	}
}

func TestManagerFailsWhenModelPathUnusable(t *testing.T) {
	base := t.TempDir()

	// A regular file where the model db directory should go
	blocked := filepath.Join(base, "blocked")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := common.NewDefaultConfig()
	cfg.Storage.Models.Path = filepath.Join(blocked, "models")
	cfg.Storage.Artifacts.Path = filepath.Join(base, "artifacts")

	if _, err := NewManager(common.NewLogger("error"), cfg); err == nil {
		t.Error("expected error when model path cannot be created")
	}
}
