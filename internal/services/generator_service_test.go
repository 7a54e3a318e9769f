package services

import (
	"math"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avd/internal/models"
	"avd/internal/testutil"
)

func newTestGenerator(seed int64) (*GeneratorService, DatabaseServiceInterface) {
	svc, _ := newTestService()
	gen := NewGeneratorService(svc, &testutil.MockLogger{}).(*GeneratorService)
	gen.rnd = rand.New(rand.NewSource(seed))
	return gen, svc
}

func TestGenerateMultiplier_UniformRange(t *testing.T) {
	gen, _ := newTestGenerator(1)

	for i := 0; i < 1000; i++ {
		m := gen.GenerateMultiplier()
		assert.GreaterOrEqual(t, m, 1.0)
		assert.Less(t, m, 5.0)
	}
}

func TestGenerateMultiplier_RoundedToTwoDecimals(t *testing.T) {
	gen, _ := newTestGenerator(2)

	for i := 0; i < 100; i++ {
		m := gen.GenerateMultiplier()
		assert.InDelta(t, math.Round(m*100), m*100, 1e-9)
	}
}

func TestGenerateMultiplier_PatternFallsBackWithoutHistory(t *testing.T) {
	gen, svc := newTestGenerator(3)
	_, err := svc.UpdateSettings(map[string]interface{}{"algorithm": models.AlgorithmPattern})
	require.NoError(t, err)

	m := gen.GenerateMultiplier()
	assert.GreaterOrEqual(t, m, 1.0)
	assert.Less(t, m, 5.0)
}

func TestGenerateMultiplier_PatternTracksRecentAverage(t *testing.T) {
	gen, svc := newTestGenerator(4)
	svc.UpdateSettings(map[string]interface{}{"algorithm": models.AlgorithmPattern})

	for i := 0; i < 5; i++ {
		_, err := svc.CreatePrediction(models.Prediction{Multiplier: 3.0})
		require.NoError(t, err)
	}

	// Average is 3.0, noise stays within [-1, 1).
	for i := 0; i < 200; i++ {
		m := gen.GenerateMultiplier()
		assert.GreaterOrEqual(t, m, 2.0)
		assert.LessOrEqual(t, m, 4.0)
	}
}

func TestGenerateMultiplier_PatternFloorsAtOne(t *testing.T) {
	gen, svc := newTestGenerator(5)
	svc.UpdateSettings(map[string]interface{}{"algorithm": models.AlgorithmPattern})

	for i := 0; i < 5; i++ {
		svc.CreatePrediction(models.Prediction{Multiplier: 1.0})
	}

	for i := 0; i < 200; i++ {
		assert.GreaterOrEqual(t, gen.GenerateMultiplier(), 1.0)
	}
}

func TestGenerateMultiplier_WeightedEveningBase(t *testing.T) {
	gen, svc := newTestGenerator(6)
	svc.UpdateSettings(map[string]interface{}{"algorithm": models.AlgorithmAI})

	// Monday 20:00, evening base without the weekend boost.
	gen.now = func() time.Time {
		return time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC)
	}

	for i := 0; i < 500; i++ {
		m := gen.GenerateMultiplier()
		assert.GreaterOrEqual(t, m, 1.25, "evening base 2.5 times factor floor 0.5")
		assert.LessOrEqual(t, m, 5.0)
	}
}

func TestGenerateMultiplier_WeightedDaytimeBase(t *testing.T) {
	gen, svc := newTestGenerator(7)
	svc.UpdateSettings(map[string]interface{}{"algorithm": models.AlgorithmAI})

	// Tuesday 12:00, plain base.
	gen.now = func() time.Time {
		return time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	}

	for i := 0; i < 500; i++ {
		m := gen.GenerateMultiplier()
		assert.GreaterOrEqual(t, m, 0.75, "base 1.5 times factor floor 0.5")
		assert.LessOrEqual(t, m, 5.0, "capped at 5")
	}
}

func TestSuggestClientCode_Shape(t *testing.T) {
	gen, _ := newTestGenerator(8)

	pattern := regexp.MustCompile(`^CLIENT\d{6}[0-9A-Z]{3}$`)
	for i := 0; i < 50; i++ {
		code := gen.SuggestClientCode()
		assert.Regexp(t, pattern, code)
	}
}

func TestSuggestClientCode_UsesMillisSuffix(t *testing.T) {
	gen, _ := newTestGenerator(9)
	gen.now = func() time.Time {
		return time.UnixMilli(1748563123456)
	}

	code := gen.SuggestClientCode()
	assert.Equal(t, "CLIENT123456", code[:12])
}

func TestTick_CompletedPredictionsCarryResults(t *testing.T) {
	gen, svc := newTestGenerator(10)

	for i := 0; i < 50; i++ {
		_, err := svc.CreatePrediction(models.Prediction{Multiplier: 2})
		require.NoError(t, err)
	}

	gen.Tick()

	for _, p := range svc.GetAllPredictions() {
		switch p.Status {
		case models.PredictionStatusCompleted:
			assert.Contains(t, []string{models.ResultSuccess, models.ResultFailed}, p.Result)
		case models.PredictionStatusActive:
			assert.Equal(t, models.ResultNone, p.Result)
		default:
			t.Fatalf("unexpected status %q", p.Status)
		}
	}
}

func TestTick_EventuallyCompletesAndGenerates(t *testing.T) {
	gen, svc := newTestGenerator(11)

	for i := 0; i < 20; i++ {
		svc.CreatePrediction(models.Prediction{Multiplier: 2})
	}

	for i := 0; i < 30; i++ {
		gen.Tick()
	}

	completed := svc.GetPredictionsByStatus(models.PredictionStatusCompleted)
	assert.NotEmpty(t, completed, "30 ticks at 30%% odds complete something")
	assert.Greater(t, len(svc.GetAllPredictions()), 20, "30 ticks at 20%% odds generate something")
}

func TestTick_NoActivePredictions(t *testing.T) {
	gen, svc := newTestGenerator(12)

	// Must not panic with an empty store; may generate a new prediction.
	gen.Tick()
	for _, p := range svc.GetAllPredictions() {
		assert.Equal(t, models.PredictionStatusActive, p.Status)
	}
}
