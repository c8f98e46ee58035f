package mp

import (
	"errors"
	"math/big"
	"testing"
)

func arithTestNumbers() []*big.Int {
	nums := fibScattered(5)
	for i := uint(3); i < 10; i++ {
		p := new(big.Int).Lsh(big.NewInt(1), 1<<i)
		nums = append(nums, p, new(big.Int).Sub(p, big.NewInt(1)))
	}
	return nums
}

func TestBasicArithmetic(t *testing.T) {
	nums := arithTestNumbers()
	for _, av := range nums {
		for _, bv := range nums {
			a, b := fromBig(av), fromBig(bv)

			if got := toBig(Add(a, b)); got.Cmp(new(big.Int).Add(av, bv)) != 0 {
				t.Errorf("Add(%s, %s) = %s", av, bv, got)
			}
			if got := toBig(Mul(a, b)); got.Cmp(new(big.Int).Mul(av, bv)) != 0 {
				t.Errorf("Mul(%s, %s) = %s", av, bv, got)
			}
			// Subtraction wraps within the result's capacity.
			diff := Sub(a, b)
			want := new(big.Int).Sub(av, bv)
			want.And(want, capMask(diff))
			if got := toBig(diff); got.Cmp(want) != 0 {
				t.Errorf("Sub(%s, %s) = %s", av, bv, got)
			}

			for bits := uint(64); bits < 512; bits += 64 {
				c := New(bits)
				mask := capMask(c)

				AddInto(c, a, b)
				want := new(big.Int).Add(av, bv)
				want.And(want, mask)
				if got := toBig(c); got.Cmp(want) != 0 {
					t.Errorf("AddInto[%d](%s, %s) = %s", bits, av, bv, got)
				}
				MulInto(c, a, b)
				want = new(big.Int).Mul(av, bv)
				want.And(want, mask)
				if got := toBig(c); got.Cmp(want) != 0 {
					t.Errorf("MulInto[%d](%s, %s) = %s", bits, av, bv, got)
				}
				SubInto(c, a, b)
				want = new(big.Int).Sub(av, bv)
				want.And(want, mask)
				if got := toBig(c); got.Cmp(want) != 0 {
					t.Errorf("SubInto[%d](%s, %s) = %s", bits, av, bv, got)
				}
			}
		}
	}
}

func TestMulCarryPropagation(t *testing.T) {
	// Two numbers whose product has a single 1 bit high in the air and then
	// all 0s until a bunch of cruft at the bottom, exercising carry
	// propagation all the way up the intermediate sums.
	ah := "b4ff6ed2c633847562087ed9354c5c17be212ac83b59c10c316250f50b7889e5b058bf6bfafd12825225ba225ede0cba583ffbd0882de88c9e62677385a6dbdedaf81959a273eb7909ebde21ae5d12e2a584501a6756fe50ccb93b93f0d6ee721b6052a0d88431e62f410d608532868cdf3a6de26886559e94cc2677eea9bd797918b70e2717e95b45918bd1f86530cb9989e68b632c496becff848aa1956cd57ed46676a65ce6dd9783f230c8796909eef5583fcfe4acbf9c8b4ea33a08ec3fd417cf7175f434025d032567a00fc329aee154ca20f799b961fbab8f841cb7351f561a44aea45746ceaf56874dad99b63a7d7af2769d2f185e2d1c656cc6630b5aba98399fa57"
	bh := "b50a77c03ac195225021dc18d930a352f27c0404742f961ca828c972737bad3ada74b1144657ab1d15fe1b8aefde8784ad61783f3c8d4584aa5f22a4eeca619f90563ae351b5da46770df182cf348d8e23b25fda07670c6609118e916a57ce4043608752c91515708327e36f5bb5ebd92cd4cfb39424167a679870202b23593aa524bac541a3ad322c38102a01e9659b06a4335c78d50739a51027954ac2bf03e500f975c2fa4d0ab5dd84cc9334f219d2ae933946583e384ed5dbf6498f214480ca66987b867df0f69d92e4e14071e4b8545212dd5e29ff0248ed751e168d78934da7930bcbe10e9a212128a68de5d749c61f5e424cf8cf6aa329674de0cf49c6f9b4c8b8cc3"
	av, _ := new(big.Int).SetString(ah, 16)
	bv, _ := new(big.Int).SetString(bh, 16)
	a, err := FromHex(ah)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FromHex(bh)
	if err != nil {
		t.Fatal(err)
	}
	if got := toBig(Mul(a, b)); got.Cmp(new(big.Int).Mul(av, bv)) != 0 {
		t.Fatalf("Mul = %s", got.Text(16))
	}

	// An intermediate-value overflow regression.
	av = new(big.Int).Lsh(big.NewInt(2), 8512)
	av.Div(av, big.NewInt(3))
	bv = new(big.Int).Lsh(big.NewInt(11), 4224)
	bv.Div(bv, big.NewInt(15))
	if got := toBig(Mul(fromBig(av), fromBig(bv))); got.Cmp(new(big.Int).Mul(av, bv)) != 0 {
		t.Fatalf("Mul regression = %s", got.Text(16))
	}
}

func divisionGrid() (divisors, quotients []*big.Int) {
	for _, s := range []string{
		"1", "2", "3", "65537", "4294967295", "4294967297",
		"340282366920938463463374607431768211297",
		"141421356237309504880168872420969807856967187537694807",
	} {
		d, _ := new(big.Int).SetString(s, 10)
		divisors = append(divisors, d)
	}
	for _, s := range []string{
		"0", "1", "2", "18446744073709551615", "18446744073709551616",
		"18446744073709551617", "17320508075688772935",
	} {
		q, _ := new(big.Int).SetString(s, 10)
		quotients = append(quotients, q)
	}
	return
}

func TestDivision(t *testing.T) {
	divisors, quotients := divisionGrid()
	one := big.NewInt(1)
	for _, dv := range divisors {
		for _, qv := range quotients {
			rems := map[string]*big.Int{}
			for _, rv := range []*big.Int{
				big.NewInt(0), big.NewInt(1),
				new(big.Int).Sub(dv, one),
				new(big.Int).Div(new(big.Int).Lsh(dv, 1), big.NewInt(3)),
			} {
				if rv.Cmp(dv) < 0 {
					rems[rv.String()] = rv
				}
			}
			for _, rv := range rems {
				nv := new(big.Int).Mul(qv, dv)
				nv.Add(nv, rv)
				n, d := fromBig(nv), fromBig(dv)

				mq := New(uint(qv.BitLen()))
				mr := New(uint(rv.BitLen()))
				if err := DivModInto(mq, mr, n, d); err != nil {
					t.Fatal(err)
				}
				if got := toBig(mq); got.Cmp(qv) != 0 {
					t.Errorf("DivModInto(%s, %s) q = %s, want %s", nv, dv, got, qv)
				}
				if got := toBig(mr); got.Cmp(rv) != 0 {
					t.Errorf("DivModInto(%s, %s) r = %s, want %s", nv, dv, got, rv)
				}

				q2, err := Div(n, d)
				if err != nil {
					t.Fatal(err)
				}
				if got := toBig(q2); got.Cmp(qv) != 0 {
					t.Errorf("Div(%s, %s) = %s", nv, dv, got)
				}
				r2, err := Mod(n, d)
				if err != nil {
					t.Fatal(err)
				}
				if got := toBig(r2); got.Cmp(rv) != 0 {
					t.Errorf("Mod(%s, %s) = %s", nv, dv, got)
				}
			}
		}
	}

	if _, _, err := DivMod(FromUint64(10), New(64)); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("DivMod by zero err = %v", err)
	}
}

func TestShifts(t *testing.T) {
	xv := new(big.Int).Lsh(big.NewInt(1), 900)
	xv.Div(xv, big.NewInt(9949))
	xv.SetBit(xv, 0, 1)
	x := fromBig(xv)

	for i := uint(0); i < 2049; i++ {
		m := x.Clone()
		LShiftFixedInto(m, m, i)
		want := new(big.Int).Lsh(xv, i)
		want.And(want, capMask(m))
		if got := toBig(m); got.Cmp(want) != 0 {
			t.Fatalf("LShiftFixedInto by %d = %s", i, got.Text(16))
		}

		CopyInto(m, x)
		RShiftFixedInto(m, m, i)
		want = new(big.Int).Rsh(xv, i)
		if got := toBig(m); got.Cmp(want) != 0 {
			t.Fatalf("RShiftFixedInto by %d = %s", i, got.Text(16))
		}
		if got := toBig(RShiftFixed(x, i)); got.Cmp(want) != 0 {
			t.Fatalf("RShiftFixed by %d = %s", i, got.Text(16))
		}
		if got := toBig(RShiftSafe(x, i)); got.Cmp(want) != 0 {
			t.Fatalf("RShiftSafe by %d = %s", i, got.Text(16))
		}
	}

	// LShiftFixed widens by the shift distance, so nothing falls off.
	wide := LShiftFixed(x, 301)
	if got := toBig(wide); got.Cmp(new(big.Int).Lsh(xv, 301)) != 0 {
		t.Fatalf("LShiftFixed = %s", got.Text(16))
	}
}
