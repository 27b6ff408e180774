package hmm

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-periodicity/dsp/core"
)

// Model is a discrete HMM with States hidden states emitting Symbols
// distinct symbols. Rows of Trans and Emit are probability distributions.
type Model struct {
	States  int
	Symbols int

	Start []float64   // Start[i] = P(state_0 = i)
	Trans [][]float64 // Trans[i][j] = P(state_t+1 = j | state_t = i)
	Emit  [][]float64 // Emit[i][k] = P(symbol k | state i)

	// Iterations is the number of Baum-Welch rounds run by Fit.
	Iterations int
}

// NewModel builds a model from explicit probabilities. The slices are
// copied.
func NewModel(start []float64, trans, emit [][]float64) (*Model, error) {
	n := len(start)
	if n == 0 || len(trans) != n || len(emit) != n {
		return nil, fmt.Errorf("%w: %d start, %d transition and %d emission rows",
			ErrInvalidStates, n, len(trans), len(emit))
	}

	symbols := len(emit[0])
	if symbols == 0 {
		return nil, fmt.Errorf("%w: empty emission row", ErrInvalidStates)
	}

	m := &Model{
		States:  n,
		Symbols: symbols,
		Start:   append([]float64(nil), start...),
		Trans:   make([][]float64, n),
		Emit:    make([][]float64, n),
	}

	for i := range n {
		if len(trans[i]) != n || len(emit[i]) != symbols {
			return nil, fmt.Errorf("%w: row %d has %d transitions and %d emissions",
				ErrInvalidStates, i, len(trans[i]), len(emit[i]))
		}
		m.Trans[i] = append([]float64(nil), trans[i]...)
		m.Emit[i] = append([]float64(nil), emit[i]...)
	}

	return m, nil
}

// anchors are the emission weights a state puts on its own symbol in the
// successive training starts. The first start is near one-hot; the second
// is a weaker prior that can escape it when the labels are noisy.
var anchors = []float64{0.9, 0.6}

// newInitialModel returns a deterministic starting point derived from the
// data. State i is tied to symbol i%symbols: it emits that symbol with
// weight anchor, and start and transition rows follow the add-one smoothed
// first-symbol and bigram counts of the sequences.
func newInitialModel(sequences [][]int, states, symbols int, anchor float64) *Model {
	m := &Model{
		States:  states,
		Symbols: symbols,
		Start:   make([]float64, states),
		Trans:   make([][]float64, states),
		Emit:    make([][]float64, states),
	}

	first := make([]float64, symbols)
	bigram := make([][]float64, symbols)
	for k := range bigram {
		bigram[k] = make([]float64, symbols)
	}
	for _, seq := range sequences {
		first[seq[0]]++
		for t := 1; t < len(seq); t++ {
			bigram[seq[t-1]][seq[t]]++
		}
	}

	other := 0.0
	if symbols > 1 {
		other = (1 - anchor) / float64(symbols-1)
	} else {
		anchor = 1
	}

	for i := range states {
		si := i % symbols
		m.Start[i] = first[si] + 1

		m.Trans[i] = make([]float64, states)
		for j := range states {
			m.Trans[i][j] = bigram[si][j%symbols] + 1
		}

		m.Emit[i] = make([]float64, symbols)
		for k := range symbols {
			m.Emit[i][k] = other
		}
		m.Emit[i][si] = anchor

		normalize(m.Trans[i])
	}
	normalize(m.Start)

	return m
}

func normalize(row []float64) {
	sum := 0.0
	for _, v := range row {
		sum += v
	}
	for i := range row {
		row[i] /= sum
	}
}

// Fit trains a model with the given number of hidden states on sequences of
// symbols in [0, symbols). Training runs once per entry of anchors and keeps
// the model with the highest log-likelihood; earlier starts win ties. Each
// run stops after cfg.MaxIterations rounds or once the total log-likelihood
// improves by less than cfg.ConvergenceTol.
func Fit(sequences [][]int, states, symbols int, opts ...core.AnalysisOption) (*Model, error) {
	cfg := core.ApplyAnalysisOptions(opts...)

	if states < 1 || symbols < 1 {
		return nil, fmt.Errorf("%w: states=%d symbols=%d", ErrInvalidStates, states, symbols)
	}

	if len(sequences) == 0 {
		return nil, ErrEmptySequence
	}

	for _, seq := range sequences {
		if err := validateSequence(seq, symbols); err != nil {
			return nil, err
		}
	}

	var (
		best   *Model
		bestLL = math.Inf(-1)
	)

	for _, anchor := range anchors {
		m, ll, err := train(newInitialModel(sequences, states, symbols, anchor), sequences, cfg)
		if err != nil {
			return nil, err
		}

		cfg.Logger.Debug("hmm start trained",
			slog.Float64("anchor", anchor),
			slog.Int("iterations", m.Iterations),
			slog.Float64("log_likelihood", ll))

		if best == nil || ll > bestLL {
			best, bestLL = m, ll
		}
	}

	cfg.Logger.Debug("hmm trained",
		slog.Int("states", states),
		slog.Int("symbols", symbols),
		slog.Int("iterations", best.Iterations),
		slog.Float64("log_likelihood", bestLL))

	return best, nil
}

// train runs Baum-Welch from m in place and returns it with the total
// log-likelihood of the sequences under the final parameters.
func train(m *Model, sequences [][]int, cfg core.AnalysisConfig) (*Model, float64, error) {
	prev := math.Inf(-1)

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		ll, err := m.reestimate(sequences)
		if err != nil {
			return nil, 0, err
		}

		m.Iterations = iter
		if ll-prev < cfg.ConvergenceTol {
			break
		}
		prev = ll
	}

	total := 0.0
	for _, seq := range sequences {
		ll, err := m.LogLikelihood(seq)
		if err != nil {
			return nil, 0, err
		}
		total += ll
	}

	return m, total, nil
}

// accumulator collects Baum-Welch expected counts across sequences.
type accumulator struct {
	start     []float64
	transNum  [][]float64
	transDen  []float64
	emitNum   [][]float64
	emitDen   []float64
	sequences int
}

func newAccumulator(states, symbols int) *accumulator {
	acc := &accumulator{
		start:    make([]float64, states),
		transNum: make([][]float64, states),
		transDen: make([]float64, states),
		emitNum:  make([][]float64, states),
		emitDen:  make([]float64, states),
	}
	for i := range states {
		acc.transNum[i] = make([]float64, states)
		acc.emitNum[i] = make([]float64, symbols)
	}
	return acc
}

// reestimate runs one E+M step in place and returns the log-likelihood of
// the sequences under the model before the update.
func (m *Model) reestimate(sequences [][]int) (float64, error) {
	acc := newAccumulator(m.States, m.Symbols)
	total := 0.0

	for _, seq := range sequences {
		alpha, scale, err := m.forward(seq)
		if err != nil {
			return 0, err
		}
		beta := m.backward(seq, scale)

		for _, c := range scale {
			total += math.Log(c)
		}

		acc.sequences++
		for t, o := range seq {
			for i := range m.States {
				g := alpha[t][i] * beta[t][i]
				if t == 0 {
					acc.start[i] += g
				}
				acc.emitNum[i][o] += g
				acc.emitDen[i] += g

				if t == len(seq)-1 {
					continue
				}

				acc.transDen[i] += g
				next := seq[t+1]
				for j := range m.States {
					acc.transNum[i][j] += alpha[t][i] * m.Trans[i][j] * m.Emit[j][next] * beta[t+1][j] / scale[t+1]
				}
			}
		}
	}

	for i := range m.States {
		m.Start[i] = acc.start[i] / float64(acc.sequences)

		if acc.transDen[i] > 0 {
			for j := range m.States {
				m.Trans[i][j] = acc.transNum[i][j] / acc.transDen[i]
			}
		}

		if acc.emitDen[i] > 0 {
			for k := range m.Symbols {
				m.Emit[i][k] = acc.emitNum[i][k] / acc.emitDen[i]
			}
		}
	}

	return total, nil
}

// forward returns the scaled forward variables (each row sums to 1) and the
// per-step scale factors; the product of the factors is P(seq).
func (m *Model) forward(seq []int) ([][]float64, []float64, error) {
	alpha := make([][]float64, len(seq))
	scale := make([]float64, len(seq))

	for t, o := range seq {
		alpha[t] = make([]float64, m.States)
		for j := range m.States {
			var p float64
			if t == 0 {
				p = m.Start[j]
			} else {
				for i := range m.States {
					p += alpha[t-1][i] * m.Trans[i][j]
				}
			}
			alpha[t][j] = p * m.Emit[j][o]
			scale[t] += alpha[t][j]
		}

		if scale[t] <= 0 {
			return nil, nil, fmt.Errorf("%w: at step %d", ErrImpossibleSequence, t)
		}

		for j := range alpha[t] {
			alpha[t][j] /= scale[t]
		}
	}

	return alpha, scale, nil
}

// backward returns the backward variables scaled with the forward factors.
func (m *Model) backward(seq []int, scale []float64) [][]float64 {
	n := len(seq)
	beta := make([][]float64, n)

	beta[n-1] = make([]float64, m.States)
	for i := range beta[n-1] {
		beta[n-1][i] = 1
	}

	for t := n - 2; t >= 0; t-- {
		beta[t] = make([]float64, m.States)
		next := seq[t+1]
		for i := range m.States {
			var s float64
			for j := range m.States {
				s += m.Trans[i][j] * m.Emit[j][next] * beta[t+1][j]
			}
			beta[t][i] = s / scale[t+1]
		}
	}

	return beta
}

// PredictProba returns P(state_t = i | seq) for every step t and state i.
func (m *Model) PredictProba(seq []int) ([][]float64, error) {
	if err := validateSequence(seq, m.Symbols); err != nil {
		return nil, err
	}

	alpha, scale, err := m.forward(seq)
	if err != nil {
		return nil, err
	}
	beta := m.backward(seq, scale)

	out := make([][]float64, len(seq))
	for t := range seq {
		out[t] = make([]float64, m.States)
		sum := 0.0
		for i := range m.States {
			out[t][i] = alpha[t][i] * beta[t][i]
			sum += out[t][i]
		}
		for i := range out[t] {
			out[t][i] /= sum
		}
	}

	return out, nil
}

// Predict returns the most likely state path (Viterbi). Ties go to the
// lowest state index.
func (m *Model) Predict(seq []int) ([]int, error) {
	if err := validateSequence(seq, m.Symbols); err != nil {
		return nil, err
	}

	n := len(seq)
	delta := make([]float64, m.States)
	next := make([]float64, m.States)
	back := make([][]int, n)

	for i := range m.States {
		delta[i] = math.Log(m.Start[i]) + math.Log(m.Emit[i][seq[0]])
	}

	for t := 1; t < n; t++ {
		back[t] = make([]int, m.States)
		for j := range m.States {
			best, arg := math.Inf(-1), 0
			for i := range m.States {
				if v := delta[i] + math.Log(m.Trans[i][j]); v > best {
					best, arg = v, i
				}
			}
			next[j] = best + math.Log(m.Emit[j][seq[t]])
			back[t][j] = arg
		}
		delta, next = next, delta
	}

	last, best := 0, math.Inf(-1)
	for i, v := range delta {
		if v > best {
			last, best = i, v
		}
	}

	if math.IsInf(best, -1) {
		return nil, ErrImpossibleSequence
	}

	path := make([]int, n)
	path[n-1] = last
	for t := n - 1; t > 0; t-- {
		path[t-1] = back[t][path[t]]
	}

	return path, nil
}

// LogLikelihood returns log P(seq | model).
func (m *Model) LogLikelihood(seq []int) (float64, error) {
	if err := validateSequence(seq, m.Symbols); err != nil {
		return 0, err
	}

	_, scale, err := m.forward(seq)
	if err != nil {
		return 0, err
	}

	ll := 0.0
	for _, c := range scale {
		ll += math.Log(c)
	}

	return ll, nil
}

func validateSequence(seq []int, symbols int) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}

	for t, o := range seq {
		if o < 0 || o >= symbols {
			return fmt.Errorf("%w: symbol %d at step %d, alphabet size %d", ErrSymbolOutOfRange, o, t, symbols)
		}
	}

	return nil
}
