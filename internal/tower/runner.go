package tower

import (
	"context"
	"fmt"

	"github.com/san-kum/towerlab/internal/phys"
)

// Metric accumulates one scalar over a run. Implementations live in
// the metrics package; the interface is here so the runner does not
// depend on them.
type Metric interface {
	Name() string
	Observe(s *Session, t float64)
	Value() float64
	Reset()
}

// Observer is called after every sample of a run.
type Observer interface {
	OnStep(s *Session, t float64)
}

// RunConfig controls a headless run.
type RunConfig struct {
	// Dt is the sampling interval in seconds.
	Dt float64
	// Duration is the total simulated time.
	Duration float64
}

// Sample is one recorded frame of a run.
type Sample struct {
	Time   float64   `json:"time"`
	Tip    phys.Vec3 `json:"tip"`
	Angles []float64 `json:"angles"`
}

// Result collects the trace and final metric values of a run.
type Result struct {
	Samples []Sample
	Metrics map[string]float64
}

// Runner drives a session headlessly for a fixed duration, sampling
// the cap position and joint angles and feeding metrics and
// observers.
type Runner struct {
	session   *Session
	metrics   []Metric
	observers []Observer
}

func NewRunner(s *Session) *Runner {
	return &Runner{session: s}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	s := r.session
	result.Samples = append(result.Samples, r.sample())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		s.Tick(cfg.Dt)

		if !s.Cap().Body.Position().IsValid() {
			return result, fmt.Errorf("simulation diverged at t=%.4f", s.Time())
		}

		result.Samples = append(result.Samples, r.sample())

		for _, m := range r.metrics {
			m.Observe(s, s.Time())
		}
		for _, obs := range r.observers {
			obs.OnStep(s, s.Time())
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (r *Runner) sample() Sample {
	s := r.session
	return Sample{
		Time:   s.Time(),
		Tip:    s.Cap().Body.Position(),
		Angles: s.JointAngles(),
	}
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
