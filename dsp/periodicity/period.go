package periodicity

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/cwbudde/algo-periodicity/dsp/core"
	"github.com/cwbudde/algo-periodicity/dsp/hmm"
	"github.com/cwbudde/algo-periodicity/dsp/segment"
)

// Period is the principal period of a signal together with the model
// evidence it was selected from.
type Period struct {
	// Segments tile the domain; interior boundaries are the begins of the
	// segments assigned to the separator state.
	Segments []segment.Segment
	// Separator is the hidden state with the largest total posterior mass.
	Separator int
	// StateMass is the posterior probability per state summed over positions.
	StateMass []float64
	// Ranked lists the states by descending mass, ties by ascending id.
	Ranked []int
	// Path is the most likely state per position.
	Path []int
	// Labels is the cluster sequence the model was trained on.
	Labels []int
}

// Boundaries returns the interior boundary points of the period.
func (p *Period) Boundaries() []float64 {
	return segment.Interior(p.Segments)
}

// AnalyzePeriod clusters src at tol and hands the result to
// AnalyzeSequence.
func AnalyzePeriod(src Sequencer, tol float64, opts ...core.AnalysisOption) (*Period, error) {
	seq, err := src.Sequence(tol)
	if err != nil {
		return nil, err
	}

	p, err := AnalyzeSequence(seq, opts...)
	if err != nil {
		return nil, fmt.Errorf("tolerance %g: %w", tol, err)
	}

	return p, nil
}

// AnalyzeSequence trains a hidden Markov model with one state per distinct
// cluster on the label sequence of seq and rebuilds the domain tiling at the
// separator state. MaxIterations, ConvergenceTol and Logger options are
// honoured.
func AnalyzeSequence(seq Sequence, opts ...core.AnalysisOption) (*Period, error) {
	cfg := core.ApplyAnalysisOptions(opts...)

	states := seq.Clusters()
	if states < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientClusters, states)
	}

	segs := seq.Segments()
	labels := seq.Labels()

	model, err := hmm.Fit([][]int{labels}, states, states, opts...)
	if err != nil {
		return nil, fmt.Errorf("periodicity: train model: %w", err)
	}

	proba, err := model.PredictProba(labels)
	if err != nil {
		return nil, fmt.Errorf("periodicity: state posteriors: %w", err)
	}

	mass := make([]float64, states)
	for _, row := range proba {
		for i, p := range row {
			mass[i] += p
		}
	}

	ranked := make([]int, states)
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return mass[ranked[a]] > mass[ranked[b]]
	})
	separator := ranked[0]

	path, err := model.Predict(labels)
	if err != nil {
		return nil, fmt.Errorf("periodicity: state path: %w", err)
	}

	lo, hi := segs[0].Begin, segs[len(segs)-1].End

	var bounds []float64
	for i, s := range path {
		if s == separator && segs[i].Begin > lo {
			bounds = append(bounds, segs[i].Begin)
		}
	}

	cfg.Logger.Debug("principal period selected",
		slog.Int("separator", separator),
		slog.Float64("mass", mass[separator]),
		slog.Int("boundaries", len(bounds)),
		slog.Int("iterations", model.Iterations))

	return &Period{
		Segments:  segment.Build(bounds, lo, hi),
		Separator: separator,
		StateMass: mass,
		Ranked:    ranked,
		Path:      path,
		Labels:    labels,
	}, nil
}

// FindPrincipalPeriod returns the principal period of src at tol as a
// domain tiling. See AnalyzePeriod.
func FindPrincipalPeriod(src Sequencer, tol float64, opts ...core.AnalysisOption) ([]segment.Segment, error) {
	p, err := AnalyzePeriod(src, tol, opts...)
	if err != nil {
		return nil, err
	}

	return p.Segments, nil
}
