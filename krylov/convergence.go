package krylov

import "math"

// controller implements the convergence/divergence policy shared by
// the real-valued MRTR drivers: residual normalisation, best-iterate
// shadow tracking, and a divergence counter.
type controller struct {
	opts       Options
	normalizer float64
	absConvCri float64

	best  float64
	bestX []float64

	divergeCount int
	log          []float64
}

func newController(opts Options, bNorm, initPrecondResidualNorm float64, n int) *controller {
	normalizer := bNorm
	switch opts.ConvNormalizeType {
	case NormalizeByInitialResidual:
		normalizer = initPrecondResidualNorm
	case NormalizeByConstant:
		normalizer = opts.ConvNormalizeConst
	}
	if normalizer == 0 {
		normalizer = 1
	}

	c := &controller{
		opts:       opts,
		normalizer: normalizer,
		absConvCri: math.Max(smallAbsConvVal, bNorm*opts.ConvCri*0.9),
		best:       math.Inf(1),
	}
	if opts.IsSaveBest {
		c.bestX = make([]float64, n)
	}
	return c
}

// observe records one iteration's residual and current iterate,
// reporting whether the solve should stop as converged or diverged.
func (c *controller) observe(rawNorm float64, x []float64) (converged, diverged bool) {
	normR := rawNorm / c.normalizer
	if c.opts.IsSaveResidualLog {
		c.log = append(c.log, normR)
	}

	if normR < c.best {
		c.best = normR
		if c.opts.IsSaveBest {
			copy(c.bestX, x)
		}
	}

	if c.opts.DivergeJudgeType == DivergeJudgeCounter {
		if normR >= c.best*c.opts.BadDivVal {
			c.divergeCount++
		} else {
			c.divergeCount = 0
		}
		if c.divergeCount >= c.opts.BadDivCountThres {
			diverged = true
		}
	}

	converged = normR < c.opts.ConvCri || rawNorm < c.absConvCri
	return converged, diverged
}

// finalX returns the best-iterate shadow when enabled, else x itself.
func (c *controller) finalX(x []float64) []float64 {
	if c.opts.IsSaveBest {
		return c.bestX
	}
	return x
}
