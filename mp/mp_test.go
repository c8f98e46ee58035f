package mp

import (
	"crypto/sha512"
	"fmt"
	"math/big"
)

// Test helpers shared by the package tests. math/big is the
// arbitrary-precision oracle all arithmetic is checked against.

// fromBig builds an Int from a big.Int via the hex codec, giving a capacity
// of four bits per hex digit of the value.
func fromBig(n *big.Int) *Int {
	x, err := FromHex(fmt.Sprintf("%x", n))
	if err != nil {
		panic(err)
	}
	return x
}

func toBig(x *Int) *big.Int {
	return new(big.Int).SetBytes(x.BytesBE())
}

// capMask returns the value x would hold if every bit of its capacity were
// set, for masking oracle results of wrapping operations.
func capMask(x *Int) *big.Int {
	one := big.NewInt(1)
	m := new(big.Int).Lsh(one, x.MaxBits())
	return m.Sub(m, one)
}

// fibScattered yields Fibonacci numbers with power-of-two indices (plus 0),
// giving test inputs of rapidly growing sizes.
func fibScattered(n int) []*big.Int {
	out := []*big.Int{big.NewInt(0)}
	a, b, c := big.NewInt(0), big.NewInt(1), big.NewInt(1)
	for ; n > 0; n-- {
		out = append(out, new(big.Int).Set(b))
		a2 := new(big.Int).Mul(a, a)
		b2 := new(big.Int).Mul(b, b)
		c2 := new(big.Int).Mul(c, c)
		ac := new(big.Int).Add(a, c)
		a, b, c = a2.Add(a2, b2), ac.Mul(ac, b), b2.Add(b2, c2)
	}
	return out
}

// fibSequence yields the plain Fibonacci sequence from F_0 = 0.
func fibSequence(n int) []*big.Int {
	out := make([]*big.Int, 0, n)
	a, b := big.NewInt(0), big.NewInt(1)
	for ; n > 0; n-- {
		out = append(out, new(big.Int).Set(a))
		a, b = b, new(big.Int).Add(a, b)
	}
	return out
}

// queueRandomData fills a QueueSource with nbytes of deterministic data
// derived from a seed string, so random-consuming code is reproducible.
func queueRandomData(q *QueueSource, nbytes int, seed string) {
	var data []byte
	for i := 0; len(data) < nbytes; i++ {
		sum := sha512.Sum512([]byte(fmt.Sprintf("preimage:%d:%s", i, seed)))
		data = append(data, sum[:]...)
	}
	q.Queue(data[:nbytes])
}

// findNonResidue returns the smallest quadratic non-residue mod the odd
// prime p.
func findNonResidue(p *big.Int) *big.Int {
	for z := int64(2); ; z++ {
		if big.Jacobi(big.NewInt(z), p) == -1 {
			return big.NewInt(z)
		}
	}
}
