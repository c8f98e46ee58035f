package mp

import "errors"

// Sentinel errors for the fallible contracts of this package. Callers match
// them with errors.Is; fallible paths may wrap them with extra context.
var (
	// ErrMalformedInput reports a string or byte encoding that cannot be
	// parsed (non-digit characters, bad framing).
	ErrMalformedInput = errors.New("mp: malformed input")

	// ErrIndexOutOfRange reports a bit or byte index beyond an Int's fixed
	// capacity.
	ErrIndexOutOfRange = errors.New("mp: index out of range")

	// ErrInvalidArgument reports a precondition violation: an even modulus
	// where an odd one is required, a non-binary bit value, a zero scalar.
	ErrInvalidArgument = errors.New("mp: invalid argument")

	// ErrDivisionByZero reports a zero divisor.
	ErrDivisionByZero = errors.New("mp: division by zero")

	// ErrNotInvertible reports gcd(a, m) != 1 in a modular inversion.
	ErrNotInvertible = errors.New("mp: not invertible")

	// ErrRandomSourceExhausted reports that an injected randomness source ran
	// out of bytes before an operation could complete.
	ErrRandomSourceExhausted = errors.New("mp: random source exhausted")
)
