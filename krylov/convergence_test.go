package krylov

import "testing"

func TestControllerBestIsMonotoneNonIncreasing(t *testing.T) {
	opts := DefaultOptions()
	opts.ConvCri = 1e-12
	c := newController(opts, 1.0, 1.0, 3)

	norms := []float64{1.0, 0.5, 0.8, 0.2, 0.6, 0.05}
	prevBest := c.best
	for _, n := range norms {
		c.observe(n, []float64{0, 0, 0})
		if c.best > prevBest {
			t.Fatalf("best increased: %v > %v", c.best, prevBest)
		}
		prevBest = c.best
	}
	if c.best != 0.05 {
		t.Errorf("best = %v, want 0.05", c.best)
	}
}

func TestControllerResidualLogLengthMatchesObserveCount(t *testing.T) {
	opts := DefaultOptions()
	opts.IsSaveResidualLog = true
	c := newController(opts, 1.0, 1.0, 2)

	for i := 0; i < 7; i++ {
		c.observe(1.0/float64(i+1), []float64{0, 0})
	}
	if len(c.log) != 7 {
		t.Errorf("log length = %d, want 7", len(c.log))
	}
}

func TestControllerSavesBestShadowOnImprovement(t *testing.T) {
	opts := DefaultOptions()
	opts.IsSaveBest = true
	c := newController(opts, 1.0, 1.0, 2)

	c.observe(1.0, []float64{1, 1})
	c.observe(0.1, []float64{2, 2})
	c.observe(0.5, []float64{3, 3}) // worse, shadow must not move

	if got := c.finalX([]float64{9, 9}); got[0] != 2 || got[1] != 2 {
		t.Errorf("shadow = %v, want [2 2]", got)
	}
}

func TestControllerDivergenceCounterAbortsAfterThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.DivergeJudgeType = DivergeJudgeCounter
	opts.BadDivVal = 1e3
	opts.BadDivCountThres = 3
	c := newController(opts, 1.0, 1.0, 1)

	// Drive best down low, then feed sustained bad iterations.
	c.observe(1e-6, []float64{0})
	var diverged bool
	for i := 0; i < 3; i++ {
		_, diverged = c.observe(1.0, []float64{0})
	}
	if !diverged {
		t.Fatal("expected divergence to be declared after sustained bad iterations")
	}
}

func TestControllerDivergenceCounterResetsOnImprovement(t *testing.T) {
	opts := DefaultOptions()
	opts.DivergeJudgeType = DivergeJudgeCounter
	opts.BadDivVal = 1e3
	opts.BadDivCountThres = 3
	c := newController(opts, 1.0, 1.0, 1)

	c.observe(1e-6, []float64{0})
	c.observe(1.0, []float64{0})
	c.observe(1.0, []float64{0})
	// A good iteration in between resets the streak.
	c.observe(1e-6, []float64{0})
	_, diverged := c.observe(1.0, []float64{0})
	if diverged {
		t.Fatal("divergence counter should have reset after the improving iteration")
	}
}

func TestControllerNoDivergenceJudgeNeverAborts(t *testing.T) {
	opts := DefaultOptions()
	opts.DivergeJudgeType = DivergeJudgeNone
	opts.BadDivVal = 1e3
	opts.BadDivCountThres = 1
	c := newController(opts, 1.0, 1.0, 1)

	c.observe(1e-6, []float64{0})
	for i := 0; i < 10; i++ {
		_, diverged := c.observe(1.0, []float64{0})
		if diverged {
			t.Fatal("DivergeJudgeNone must never report divergence")
		}
	}
}
