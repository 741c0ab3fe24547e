package main

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/lox/splitrand/internal/backend"
	"github.com/lox/splitrand/internal/config"
	"github.com/lox/splitrand/internal/statistics"
	"github.com/lox/splitrand/split"
)

// zLimit is the largest |z| a check may report and still pass.
const zLimit = 4.0

// expectedXorBits is the mean number of differing bits between two
// independent uniform 64-bit words.
const expectedXorBits = 32

var errChecksFailed = errors.New("one or more checks failed")

type CheckCmd struct {
	All bool `short:"a" help:"Check every backend and sequential combination"`
}

type checkResult struct {
	Generator string
	Name      string
	Detail    string
	Pass      bool
}

func (c *CheckCmd) Run(g *Globals) error {
	e, err := g.load()
	if err != nil {
		return err
	}

	targets := [][2]string{{e.cfg.Generator.Backend, e.cfg.Generator.Sequential}}
	if c.All {
		targets = allTargets()
	}

	var results []checkResult
	for _, t := range targets {
		name, seq := t[0], t[1]
		rs, err := runChecks(func() (backend.Generator, error) {
			return e.open(name, seq)
		}, backend.Label(name, seq), e.cfg.Check)
		if err != nil {
			return err
		}
		results = append(results, rs...)
	}

	fmt.Println(renderChecks(results))

	failed := slices.ContainsFunc(results, func(r checkResult) bool { return !r.Pass })
	if failed {
		return errChecksFailed
	}
	e.logger.Info("All checks passed", "checks", len(results))
	return nil
}

// runChecks runs the smoke tests against generators produced by open. Each
// call to open must return a generator in the same initial state.
func runChecks(open func() (backend.Generator, error), label string, cfg *config.CheckConfig) ([]checkResult, error) {
	var results []checkResult
	add := func(name, detail string, pass bool) {
		results = append(results, checkResult{Generator: label, Name: name, Detail: detail, Pass: pass})
	}

	g, err := open()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, cfg.Bytes)
	g.Fill(buf)

	chi := statistics.ChiSquareBytes(buf)
	z := statistics.ChiSquareZ(chi, statistics.ByteDegreesOfFreedom)
	add("byte histogram", fmt.Sprintf("chi2=%.1f z=%.2f", chi, z), math.Abs(z) < zLimit)

	z = statistics.Monobit(buf)
	add("monobit", fmt.Sprintf("z=%.2f", z), math.Abs(z) < zLimit)

	parent, err := open()
	if err != nil {
		return nil, err
	}
	xor := func(name string, a, b []uint64) error {
		detail, pass, err := scoreXor(statistics.XorPopCount(a, b))
		if err != nil {
			return fmt.Errorf("%s: %s: %w", label, name, err)
		}
		add(name, detail, pass)
		return nil
	}

	child := parent.Split()
	if err := xor("split siblings", split.Words(parent, cfg.Words), split.Words(child, cfg.Words)); err != nil {
		return nil, err
	}

	branch := parent.Branch()
	if err := xor("branch neighbours", split.Words(branch.Call(0), cfg.Words), split.Words(branch.Call(1), cfg.Words)); err != nil {
		return nil, err
	}
	if err := xor("branch vs parent", split.Words(branch.Call(0), cfg.Words), split.Words(parent, cfg.Words)); err != nil {
		return nil, err
	}

	a, err := open()
	if err != nil {
		return nil, err
	}
	b, err := open()
	if err != nil {
		return nil, err
	}
	same := slices.Equal(split.Words(a, 16), split.Words(b, 16))
	add("reproducible", "16 words from equal seeds", same)

	return results, nil
}

// scoreXor summarises a differing-bit sample. The mean must lie within
// zLimit standard errors of 32; the interval and the 5th to 95th
// percentile spread are reported alongside.
func scoreXor(s *statistics.Statistics) (string, bool, error) {
	if err := s.Validate(); err != nil {
		return "", false, err
	}
	z := s.ZScore(expectedXorBits)
	lo, hi := s.ConfidenceInterval95()
	detail := fmt.Sprintf("mean=%.3f ci95=[%.2f,%.2f] p5-p95=%.0f-%.0f z=%.2f",
		s.Mean(), lo, hi, s.Percentile(0.05), s.Percentile(0.95), z)
	return detail, math.Abs(z) < zLimit, nil
}
