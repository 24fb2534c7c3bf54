// Package search finds when a time-varying condition holds: the next or
// previous occurrence with its start, end and peak, and how often it
// holds over a span.
package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/litescript/ls-astroclock/internal/astro"
)

// ErrTimeout is returned when a search runs past its deadline or steps
// outside the supported time range.
var ErrTimeout = errors.New("search timed out or exceeded supported time bounds")

// Iteration counts for the edge and peak refinements.
const (
	edgeIterations = 10
	peakIterations = 10
)

// Condition is anything that can be searched for. Evaluate returns a
// non-negative error metric that is smaller nearer an exact match, or NaN
// when the condition does not hold. TimeStep is the scanning interval in
// days; it must be positive.
type Condition interface {
	Evaluate(jd float64) float64
	TimeStep() float64
}

// Result is one occurrence of a condition, as Julian Days. Start is
// always at or before End regardless of search direction.
type Result struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Peak  float64 `json:"peak"`
}

// resumeGap separates a follow-up search from the previous occurrence.
const resumeGap = 1.0 / 1440

// Resume returns where to start the next search in the given direction so
// that r is not found again: just after End going forward, just before
// Start going backward.
func (r Result) Resume(forward bool) float64 {
	if forward {
		return r.End + resumeGap
	}
	return r.Start - resumeGap
}

// Options bound a search.
type Options struct {
	// Timeout is the wall-clock budget for one search. Zero means no limit
	// beyond the context.
	Timeout time.Duration

	// MinJD and MaxJD are the time range a search may scan.
	MinJD float64
	MaxJD float64
}

// DefaultOptions returns a five second budget over the supported range.
func DefaultOptions() Options {
	return Options{
		Timeout: 5 * time.Second,
		MinJD:   astro.MinJD,
		MaxJD:   astro.MaxJD,
	}
}

// Searcher runs searches with fixed options.
type Searcher struct {
	opts Options
	now  func() time.Time
}

// New creates a searcher.
func New(opts Options) *Searcher {
	return &Searcher{opts: opts, now: time.Now}
}

// Options returns the searcher's options.
func (s *Searcher) Options() Options {
	return s.opts
}

func matches(err float64) bool {
	return !math.IsNaN(err)
}

// guard is polled on every scanning step.
type guard struct {
	ctx      context.Context
	deadline time.Time
	now      func() time.Time
	min, max float64
}

func (s *Searcher) guard(ctx context.Context) guard {
	g := guard{ctx: ctx, now: s.now, min: s.opts.MinJD, max: s.opts.MaxJD}
	if s.opts.Timeout > 0 {
		g.deadline = s.now().Add(s.opts.Timeout)
	}
	return g
}

func (g guard) check(jd float64) error {
	if err := g.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	if !g.deadline.IsZero() && g.now().After(g.deadline) {
		return ErrTimeout
	}
	if !(jd >= g.min && jd <= g.max) {
		return ErrTimeout
	}
	return nil
}

// Search finds the next occurrence of c after start, or the previous one
// when forward is false. An occurrence already in progress at start is
// skipped.
func (s *Searcher) Search(ctx context.Context, start float64, c Condition, forward bool) (Result, error) {
	dt := c.TimeStep()
	if !(dt > 0) || math.IsInf(dt, 0) {
		return Result{}, fmt.Errorf("search: invalid time step %v", dt)
	}
	if !forward {
		dt = -dt
	}
	g := s.guard(ctx)

	t := start
	for matches(c.Evaluate(t)) {
		if err := g.check(t); err != nil {
			return Result{}, err
		}
		t += dt
	}
	for !matches(c.Evaluate(t)) {
		if err := g.check(t); err != nil {
			return Result{}, err
		}
		t += dt
	}
	leading := findEdge(c, t, t-dt)

	tBest, errBest := t, c.Evaluate(t)
	for {
		e := c.Evaluate(t)
		if !matches(e) {
			break
		}
		if e < errBest {
			tBest, errBest = t, e
		}
		if err := g.check(t); err != nil {
			return Result{}, err
		}
		t += dt
	}
	trailing := findEdge(c, t-dt, t)
	peak := refinePeak(c, tBest-dt, tBest+dt, errBest)

	if forward {
		return Result{Start: leading, End: trailing, Peak: peak}, nil
	}
	return Result{Start: trailing, End: leading, Peak: peak}, nil
}

// findEdge bisects between a matching and a non-matching time and returns
// the last midpoint.
func findEdge(c Condition, in, out float64) float64 {
	var t float64
	for range edgeIterations {
		t = (in + out) / 2
		if matches(c.Evaluate(t)) {
			in = t
		} else {
			out = t
		}
	}
	return t
}

// refinePeak narrows [a, b] toward the lowest error by comparing the
// quarter points against the best error seen so far.
func refinePeak(c Condition, a, b, best float64) float64 {
	for range peakIterations {
		mid := (a + b) / 2
		left := (3*a + b) / 4
		if e := c.Evaluate(left); matches(e) && e < best {
			b, best = mid, e
			continue
		}
		right := (a + 3*b) / 4
		if e := c.Evaluate(right); matches(e) && e < best {
			a, best = mid, e
			continue
		}
		a, b = left, right
	}
	return (a + b) / 2
}

// Frequency estimates the fraction of [low, high] during which c holds
// with an error below maxOrb, from n uniform random samples.
func Frequency(c Condition, low, high float64, n int, maxOrb float64) float64 {
	return FrequencyRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), c, low, high, n, maxOrb)
}

// FrequencyRand is Frequency with a caller-supplied random source.
func FrequencyRand(r *rand.Rand, c Condition, low, high float64, n int, maxOrb float64) float64 {
	if n <= 0 {
		return 0
	}
	hits := 0
	span := high - low
	for range n {
		if e := c.Evaluate(low + r.Float64()*span); e < maxOrb {
			hits++
		}
	}
	return float64(hits) / float64(n)
}
