package qsim

import "errors"

// Configuration errors. Gate application itself never fails.
var (
	ErrInvalidWorkers = errors.New("qsim: worker count must be at least 1")
	ErrInvalidChunk   = errors.New("qsim: minimum chunk size must be at least 1")
	ErrInvalidQubits  = errors.New("qsim: qubit count out of range")
)
