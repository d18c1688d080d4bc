package fixedpoint

import (
	"math/big"
	"testing"
)

func TestParseFormatRoundTrip(t *testing.T) {
	// parse(format(v, s, false), s, Truncate) == v
	cases := []struct {
		v int64
		s uint
	}{
		{0, 2}, {100, 0}, {-12345, 3}, {7, 5}, {-1, 0},
	}
	for _, c := range cases {
		x := FromInt64(c.v, c.s)
		text := x.Format(false)
		got, err := Parse(text, c.s, Truncate)
		if err != nil {
			t.Fatalf("Parse(%q, %d): %v", text, c.s, err)
		}
		if got.V.Cmp(x.V) != 0 {
			t.Fatalf("round trip mismatch: v=%d s=%d formatted=%q reparsed=%s", c.v, c.s, text, got.V.String())
		}
	}
}

func TestFormatTrailingZeros(t *testing.T) {
	x := FromInt64(12300, 3)
	if got := x.Format(true); got != "12.3" {
		t.Fatalf("expected 12.3, got %s", got)
	}
	if got := x.Format(false); got != "12.300" {
		t.Fatalf("expected 12.300, got %s", got)
	}
}

func TestFormatNegativeAndZeroScale(t *testing.T) {
	x := FromInt64(-42, 0)
	if got := x.Format(true); got != "-42" {
		t.Fatalf("expected -42, got %s", got)
	}
}

func TestFormatSmallFraction(t *testing.T) {
	x := FromInt64(5, 3)
	if got := x.Format(false); got != "0.005" {
		t.Fatalf("expected 0.005, got %s", got)
	}
}

func TestParseInvalidFormat(t *testing.T) {
	for _, bad := range []string{"", "abc", "1.2.3", "-", "+", "1.2a"} {
		if _, err := Parse(bad, 2, Truncate); err == nil {
			t.Fatalf("expected error parsing %q", bad)
		}
	}
}

func TestAddSubMulRequireMatchingScale(t *testing.T) {
	a := FromInt64(100, 2)
	b := FromInt64(5, 1)
	if _, err := Add(a, b); err == nil {
		t.Fatal("expected scale mismatch error from Add")
	}
	if _, err := Sub(a, b); err == nil {
		t.Fatal("expected scale mismatch error from Sub")
	}
	if _, err := Mul(a, b); err == nil {
		t.Fatal("expected scale mismatch error from Mul")
	}
}

func TestAddSubMul(t *testing.T) {
	a := FromInt64(150, 2) // 1.50
	b := FromInt64(25, 2)  // 0.25

	sum, err := Add(a, b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Format(false) != "1.75" {
		t.Fatalf("expected 1.75, got %s", sum.Format(false))
	}

	diff, err := Sub(a, b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if diff.Format(false) != "1.25" {
		t.Fatalf("expected 1.25, got %s", diff.Format(false))
	}

	prod, err := Mul(a, b)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	// scale-preserving: 150 * 25 = 3750, scale 2 => 37.50
	if prod.Format(false) != "37.50" {
		t.Fatalf("expected 37.50, got %s", prod.Format(false))
	}
}

// divide(100, 3, s=2, round) over scaled integer (10000, 2) => (3333, 2), i.e. 33.33
func TestDivideBankersRoundingScenario1(t *testing.T) {
	x := FromInt64(10000, 2)
	got, err := Divide(x, big.NewInt(3), Round)
	if err != nil {
		t.Fatalf("Divide: %v", err)
	}
	if got.V.Int64() != 3333 {
		t.Fatalf("expected 3333, got %s", got.V.String())
	}
}

func TestDivideBankersRoundingHalfToEven(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{15, 10, 2}, // 1.5 -> 2 (even)
		{25, 10, 2}, // 2.5 -> 2 (even)
		{35, 10, 4}, // 3.5 -> 4 (even)
	}
	for _, c := range cases {
		x := FromInt64(c.a, 0)
		got, err := Divide(x, big.NewInt(c.b), Round)
		if err != nil {
			t.Fatalf("Divide(%d,%d): %v", c.a, c.b, err)
		}
		if got.V.Int64() != c.want {
			t.Fatalf("Divide(%d,%d) = %d, want %d", c.a, c.b, got.V.Int64(), c.want)
		}
	}
}

func TestDivideTruncateRemainderIdentity(t *testing.T) {
	// quot*b + rem = a, for divide_truncate
	a := big.NewInt(103)
	b := big.NewInt(7)
	q, err := DivideInt(a, b, Truncate)
	if err != nil {
		t.Fatalf("DivideInt: %v", err)
	}
	rem := new(big.Int).Sub(a, new(big.Int).Mul(q, b))
	reconstructed := new(big.Int).Add(new(big.Int).Mul(q, b), rem)
	if reconstructed.Cmp(a) != 0 {
		t.Fatalf("quot*b+rem != a: got %s want %s", reconstructed.String(), a.String())
	}
	if q.Int64() != 14 {
		t.Fatalf("expected truncated quotient 14, got %s", q.String())
	}
}

func TestDivideCeilFloor(t *testing.T) {
	a := big.NewInt(10)
	b := big.NewInt(3)
	ceil, err := DivideInt(a, b, Ceil)
	if err != nil {
		t.Fatalf("Ceil: %v", err)
	}
	if ceil.Int64() != 4 {
		t.Fatalf("expected ceil 4, got %s", ceil.String())
	}
	floor, err := DivideInt(a, b, Floor)
	if err != nil {
		t.Fatalf("Floor: %v", err)
	}
	if floor.Int64() != 3 {
		t.Fatalf("expected floor 3, got %s", floor.String())
	}

	negA := big.NewInt(-10)
	ceilNeg, err := DivideInt(negA, b, Ceil)
	if err != nil {
		t.Fatalf("Ceil neg: %v", err)
	}
	if ceilNeg.Int64() != -3 {
		t.Fatalf("expected ceil(-10/3) = -3, got %s", ceilNeg.String())
	}
	floorNeg, err := DivideInt(negA, b, Floor)
	if err != nil {
		t.Fatalf("Floor neg: %v", err)
	}
	if floorNeg.Int64() != -4 {
		t.Fatalf("expected floor(-10/3) = -4, got %s", floorNeg.String())
	}
}

func TestDivideByZero(t *testing.T) {
	x := FromInt64(100, 2)
	if _, err := Divide(x, big.NewInt(0), Truncate); err == nil {
		t.Fatal("expected ErrDivisionByZero")
	}
}

func TestConvertScaleUpscale(t *testing.T) {
	x := FromInt64(125, 1) // 12.5
	got, err := ConvertScale(x, 3, Truncate)
	if err != nil {
		t.Fatalf("ConvertScale: %v", err)
	}
	if got.V.Int64() != 12500 {
		t.Fatalf("expected 12500, got %s", got.V.String())
	}
}

func TestConvertScaleDownscaleRounds(t *testing.T) {
	// Downscaling discards digits and resolves them with the given mode.
	x := FromInt64(123456, 4) // 12.3456
	down, err := ConvertScale(x, 2, Round)
	if err != nil {
		t.Fatalf("downscale: %v", err)
	}
	if down.V.Int64() != 1235 { // 12.3456 -> 12.35 (discarded 56 is more than half, so it rounds up)
		t.Fatalf("expected 1235, got %s", down.V.String())
	}
}

func TestConvertScaleMatchesLiteralDivideExamples(t *testing.T) {
	// divide(15, 10, s=0, round) = 2 reframed as convertScale from scale 1 to 0.
	cases := []struct {
		v    int64
		want int64
	}{
		{15, 2},
		{25, 2},
		{35, 4},
	}
	for _, c := range cases {
		x := FromInt64(c.v, 1)
		got, err := ConvertScale(x, 0, Round)
		if err != nil {
			t.Fatalf("ConvertScale: %v", err)
		}
		if got.V.Int64() != c.want {
			t.Fatalf("ConvertScale(%d, 1->0, Round) = %d, want %d", c.v, got.V.Int64(), c.want)
		}
	}
}

func TestMulRescale(t *testing.T) {
	a := FromInt64(150, 2) // 1.50
	b := FromInt64(200, 2) // 2.00
	got, err := MulRescale(a, b, 2, Truncate)
	if err != nil {
		t.Fatalf("MulRescale: %v", err)
	}
	if got.Format(false) != "3.00" {
		t.Fatalf("expected 3.00, got %s", got.Format(false))
	}
}

func TestDivideScaled(t *testing.T) {
	a := FromInt64(1000, 2) // 10.00
	b := FromInt64(300, 2)  // 3.00
	got, err := DivideScaled(a, b, 4, Round)
	if err != nil {
		t.Fatalf("DivideScaled: %v", err)
	}
	// 10/3 = 3.3333...
	if got.Format(false) != "3.3333" {
		t.Fatalf("expected 3.3333, got %s", got.Format(false))
	}
}

func TestCmpRequiresMatchingScale(t *testing.T) {
	a := FromInt64(100, 2)
	b := FromInt64(10, 1)
	if _, err := Cmp(a, b); err == nil {
		t.Fatal("expected scale mismatch error")
	}
	c := FromInt64(100, 2)
	d := FromInt64(200, 2)
	cmp, err := Cmp(c, d)
	if err != nil {
		t.Fatalf("Cmp: %v", err)
	}
	if cmp >= 0 {
		t.Fatalf("expected c < d, got cmp=%d", cmp)
	}
}

func TestMustParsePanicsOnError(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic from MustParse on invalid input")
		}
	}()
	MustParse("not-a-number", 2, Truncate)
}
