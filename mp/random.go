package mp

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
)

// RandomSource is an injectable stream of random bytes, consumed
// front-to-back by RandomBits and RandomInRange. Implementations decide
// whether exhaustion is possible.
type RandomSource interface {
	// ReadRandom returns the next n bytes of the stream, or
	// ErrRandomSourceExhausted if fewer remain.
	ReadRandom(n int) ([]byte, error)
}

// QueueSource is a deterministic RandomSource fed explicitly with bytes.
// Tests queue a fixed stream, run the code under test, and check Len() to
// prove exactly the expected amount of randomness was consumed; Clear between
// tests prevents cross-test contamination.
type QueueSource struct {
	buf []byte
}

// NewQueueSource returns an empty queue.
func NewQueueSource() *QueueSource { return &QueueSource{} }

// Queue appends b to the pending stream.
func (q *QueueSource) Queue(b []byte) {
	q.buf = append(q.buf, b...)
}

// Len reports the number of unconsumed bytes.
func (q *QueueSource) Len() int { return len(q.buf) }

// Clear drops all unconsumed bytes.
func (q *QueueSource) Clear() { q.buf = nil }

// ReadRandom pops the next n bytes.
func (q *QueueSource) ReadRandom(n int) ([]byte, error) {
	if n > len(q.buf) {
		return nil, errors.Wrapf(ErrRandomSourceExhausted, "need %d bytes, have %d", n, len(q.buf))
	}
	out := q.buf[:n:n]
	q.buf = q.buf[n:]
	return out, nil
}

// SystemSource draws from the operating system CSPRNG and never exhausts.
type SystemSource struct{}

// ReadRandom returns n bytes from crypto/rand.
func (SystemSource) ReadRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// RandomBits returns a uniform value below 2^bits with capacity bits,
// consuming exactly the minimum covering number of bytes from src and
// masking off the excess high bits.
func RandomBits(src RandomSource, bitLen uint) (*Int, error) {
	nbytes := int((bitLen + 7) / 8)
	b, err := src.ReadRandom(nbytes)
	if err != nil {
		return nil, err
	}
	if excess := uint(nbytes)*8 - bitLen; excess != 0 {
		b[0] &= 0xff >> excess
	}
	out := New(bitLen)
	CopyInto(out, FromBytesBE(b))
	return out, nil
}

// RandomInRange returns a uniform value in [lo, hi). Each attempt draws
// hi.MaxBytes()+16 bytes and rejection-samples: a candidate is rejected only
// when it falls in the final partial block of the draw space, which the
// 16-byte margin makes vanishingly rare, and the reduced candidate is
// otherwise within 2^-128 of uniform. Fails only when src is exhausted, or
// with ErrInvalidArgument when lo >= hi.
func RandomInRange(src RandomSource, lo, hi *Int) (*Int, error) {
	if Hs(lo, hi) == 1 {
		return nil, errors.Wrap(ErrInvalidArgument, "empty range")
	}
	span := New(hi.bits)
	SubInto(span, hi, lo)
	nbytes := hi.MaxBytes() + 16
	drawBits := nbytes * 8
	// Reject candidates at or above the largest multiple of span in the draw
	// space, so the reduction below is unbiased.
	quot, err := Div(PowerOf2(drawBits), span)
	if err != nil {
		return nil, err
	}
	limit := Mul(quot, span)
	for {
		b, err := src.ReadRandom(int(nbytes))
		if err != nil {
			return nil, err
		}
		c := FromBytesBE(b)
		if Hs(c, limit) == 1 {
			continue
		}
		rem, err := Mod(c, span)
		if err != nil {
			return nil, err
		}
		out := New(hi.bits)
		AddInto(out, lo, rem)
		return out, nil
	}
}
