// Package hmm implements a discrete hidden Markov model.
//
// [Fit] trains a model on one or more symbol sequences with Baum-Welch,
// using scaled forward/backward passes so long sequences do not underflow.
// A trained [Model] answers three queries:
//
//   - [Model.PredictProba]: per-step posterior state probabilities
//   - [Model.Predict]: the most likely state path (Viterbi)
//   - [Model.LogLikelihood]: log P(sequence | model)
//
// Initialisation is deterministic. Start and transition probabilities are
// uniform and state k leans toward symbol k mod symbols, so when the
// number of states equals the alphabet size the learned states stay
// aligned with the symbols they were seeded on.
package hmm
