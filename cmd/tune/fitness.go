package main

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/arena/config"
	"github.com/pthm-cable/arena/game"
)

// survivalWeight is the share of fitness that depends on staying alive;
// the rest comes from the peak score alone.
const survivalWeight = 0.5

// FitnessEvaluator runs headless autopilot games and scores a parameter vector.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	logger     *slog.Logger

	mu          sync.Mutex
	lastPeak    float64
	lastSurvive float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// LastRun returns the mean peak score and survival fraction of the most recent evaluation.
func (fe *FitnessEvaluator) LastRun() (peak, survival float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastPeak, fe.lastSurvive
}

// runResult holds the outcome of one game.
type runResult struct {
	peakScore     int
	survivalTicks int32
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Seeds run in parallel; each gets its own engine and world.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runGame(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	fitness := make([]float64, len(results))
	peaks := make([]float64, len(results))
	survival := make([]float64, len(results))
	for i, r := range results {
		peaks[i] = float64(r.peakScore)
		survival[i] = float64(r.survivalTicks) / float64(fe.maxTicks)
		fitness[i] = computeFitness(r, fe.maxTicks)
	}

	fe.mu.Lock()
	fe.lastPeak = stat.Mean(peaks, nil)
	fe.lastSurvive = stat.Mean(survival, nil)
	fe.mu.Unlock()

	return stat.Mean(fitness, nil)
}

// runGame plays one autopilot game until death or maxTicks.
func (fe *FitnessEvaluator) runGame(cfg *config.Config, seed int64) runResult {
	session, err := game.NewSession(cfg, game.SessionOptions{
		Engine:         game.Options{Seed: seed, Logger: fe.logger},
		Name:           "Tuner",
		Autopilot:      true,
		StepsPerUpdate: 1,
	})
	if err != nil {
		fe.logger.Error("failed to create session", "error", err)
		return runResult{}
	}
	defer session.Close()

	if err := session.Start(""); err != nil {
		return runResult{}
	}

	var r runResult
	for session.Tick() < fe.maxTicks {
		session.UpdateHeadless()
		w := session.World()
		if w.Score > r.peakScore {
			r.peakScore = w.Score
		}
		if w.Phase != game.PhasePlaying {
			break
		}
	}
	r.survivalTicks = session.Tick()
	return r
}

// computeFitness is the negated peak score, discounted for dying early:
// -(peak × (1 - w + w × survivedFraction)).
func computeFitness(r runResult, maxTicks int32) float64 {
	survived := 1.0
	if maxTicks > 0 {
		survived = math.Min(1, float64(r.survivalTicks)/float64(maxTicks))
	}
	return -float64(r.peakScore) * (1 - survivalWeight + survivalWeight*survived)
}
