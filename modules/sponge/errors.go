package sponge

import "errors"

var (
	// ErrFinalized is returned by any operation on a sponge whose domain tag
	// has already been written.
	ErrFinalized = errors.New("sponge already finalized")

	// ErrCountOverflow reports a batch length, or a merged run of batches,
	// that does not fit in the 31 bit magnitude of a serialized action.
	ErrCountOverflow = errors.New("action count exceeds 31 bits")

	// ErrFailed is returned by any operation on a sponge whose permutation
	// failed part way through a batch. Its log no longer matches its state.
	ErrFailed = errors.New("sponge failed mid batch")

	ErrInvalidRate     = errors.New("invalid sponge rate")
	ErrNilCollaborator = errors.New("nil permutation or tag hasher")
)
