package krylov

import "math"

// controllerC is the complex128 counterpart of controller. The
// residual norms it tracks are always real (the Euclidean modulus of
// a complex vector), so its bookkeeping fields are identical in type
// to controller's; only the shadow vector's element type differs.
type controllerC struct {
	opts       Options
	normalizer float64
	absConvCri float64

	best  float64
	bestX []complex128

	divergeCount int
	log          []float64
}

func newControllerC(opts Options, bNorm, initResidualNorm float64, n int) *controllerC {
	normalizer := bNorm
	switch opts.ConvNormalizeType {
	case NormalizeByInitialResidual:
		normalizer = initResidualNorm
	case NormalizeByConstant:
		normalizer = opts.ConvNormalizeConst
	}
	if normalizer == 0 {
		normalizer = 1
	}

	c := &controllerC{
		opts:       opts,
		normalizer: normalizer,
		absConvCri: math.Max(smallAbsConvVal, bNorm*opts.ConvCri*0.9),
		best:       math.Inf(1),
	}
	if opts.IsSaveBest {
		c.bestX = make([]complex128, n)
	}
	return c
}

func (c *controllerC) observe(rawNorm float64, x []complex128) (converged, diverged bool) {
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

func (c *controllerC) finalX(x []complex128) []complex128 {
	if c.opts.IsSaveBest {
		return c.bestX
	}
	return x
}
