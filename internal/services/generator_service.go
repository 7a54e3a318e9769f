package services

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"avd/internal/models"
	"avd/internal/providers"
)

const (
	patternWindow = 5
	completeOdds  = 0.3
	successOdds   = 0.6
	generateOdds  = 0.2
)

type GeneratorServiceInterface interface {
	GenerateMultiplier() float64
	SuggestClientCode() string
	Tick()
}

// GeneratorService produces multiplier values with one of three formulas
// selected by the settings singleton and drives the completion lifecycle of
// active predictions.
type GeneratorService struct {
	db     DatabaseServiceInterface
	logger providers.Logger
	rnd    *rand.Rand
	now    func() time.Time
}

func NewGeneratorService(db DatabaseServiceInterface, logger providers.Logger) GeneratorServiceInterface {
	return &GeneratorService{
		db:     db,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

func (gs *GeneratorService) GenerateMultiplier() float64 {
	switch gs.db.GetSettings().Algorithm {
	case models.AlgorithmPattern:
		return gs.patternMultiplier()
	case models.AlgorithmAI:
		return gs.weightedMultiplier()
	default:
		return gs.uniformMultiplier()
	}
}

// uniformMultiplier draws uniformly from [1, 5).
func (gs *GeneratorService) uniformMultiplier() float64 {
	return round2(gs.rnd.Float64()*4 + 1)
}

// patternMultiplier averages the most recent predictions and adds noise in
// [-1, 1), floored at 1. Falls back to uniform with no history.
func (gs *GeneratorService) patternMultiplier() float64 {
	recent := gs.db.GetRecentPredictions(patternWindow)
	if len(recent) == 0 {
		return gs.uniformMultiplier()
	}
	sum := 0.0
	for _, p := range recent {
		sum += p.Multiplier
	}
	avg := sum / float64(len(recent))
	variance := gs.rnd.Float64()*2 - 1
	return round2(math.Max(1, avg+variance))
}

// weightedMultiplier biases by time of day (higher base in the evening and
// night hours) and weekends, capped at 5.
func (gs *GeneratorService) weightedMultiplier() float64 {
	now := gs.now()
	base := 1.5
	if hour := now.Hour(); hour >= 18 || hour <= 6 {
		base = 2.5
	}
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		base *= 1.2
	}
	factor := gs.rnd.Float64()*2 + 0.5
	return round2(math.Min(5, base*factor))
}

// SuggestClientCode builds a human-facing access code from the current time
// and a random suffix. Uniqueness is still enforced by the store's duplicate
// check, not by this generator.
func (gs *GeneratorService) SuggestClientCode() string {
	millis := strconv.FormatInt(gs.now().UnixMilli(), 10)
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = alphabet[gs.rnd.Intn(len(alphabet))]
	}
	return "CLIENT" + millis + string(suffix)
}

// Tick completes a random share of active predictions and occasionally emits
// a new one. Individual record failures are logged and skipped.
func (gs *GeneratorService) Tick() {
	for _, p := range gs.db.GetPredictionsByStatus(models.PredictionStatusActive) {
		if gs.rnd.Float64() >= completeOdds {
			continue
		}
		result := models.ResultFailed
		if gs.rnd.Float64() < successOdds {
			result = models.ResultSuccess
		}
		_, err := gs.db.UpdatePrediction(p.ID, map[string]interface{}{
			"status": models.PredictionStatusCompleted,
			"result": result,
		})
		if err != nil {
			gs.logger.Errorf(providers.TypeApp, "Failed to complete prediction %s: %s", p.ID, err)
		}
	}

	if gs.rnd.Float64() < generateOdds {
		multiplier := gs.GenerateMultiplier()
		if _, err := gs.db.CreatePrediction(models.Prediction{Multiplier: multiplier}); err != nil {
			gs.logger.Errorf(providers.TypeApp, "Failed to create prediction: %s", err)
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
