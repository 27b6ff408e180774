package hmm

import "errors"

var (
	// ErrInvalidStates indicates a non-positive state or symbol count, or
	// model matrices of inconsistent shape.
	ErrInvalidStates = errors.New("hmm: invalid state or symbol count")
	// ErrEmptySequence indicates an empty training set or sequence.
	ErrEmptySequence = errors.New("hmm: empty sequence")
	// ErrSymbolOutOfRange indicates a symbol outside [0, symbols).
	ErrSymbolOutOfRange = errors.New("hmm: symbol out of range")
	// ErrImpossibleSequence indicates a sequence with zero probability under the model.
	ErrImpossibleSequence = errors.New("hmm: sequence has zero probability")
)
