package solidity

import "errors"

var (
	// ErrUnknownChannel indicates a channel name or value outside the supported set.
	ErrUnknownChannel = errors.New("solidity: unknown channel")
	// ErrUnknownComparator indicates a comparator name or value outside the supported set.
	ErrUnknownComparator = errors.New("solidity: unknown comparator")
	// ErrMaskRows indicates fixture rows of differing lengths.
	ErrMaskRows = errors.New("solidity: all mask rows must have the same length")
)
