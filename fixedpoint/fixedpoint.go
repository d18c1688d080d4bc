// Package fixedpoint implements arbitrary-precision fixed-point decimal
// arithmetic: a scaled integer is a pair (v, s) denoting the rational
// value v * 10^-s, where v is an arbitrary-precision integer and s is a
// non-negative number of implicit decimal places.
//
// All binary operations (Add, Sub, Mul) require both operands to share
// the same scale; callers that need to combine values of different
// scales should convert one side first with ConvertScale. Division is
// the odd one out: it divides a scaled value's underlying integer by a
// plain integer divisor and preserves the dividend's scale, matching how
// a monetary amount is split across a plain count rather than another
// monetary amount.
//
// Four rounding modes are supported: Truncate (toward zero), Ceil
// (toward positive infinity), Floor (toward negative infinity), and
// Round (half-to-even, i.e. banker's rounding).
package fixedpoint

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidFormat is returned when a decimal literal cannot be parsed.
var ErrInvalidFormat = errors.New("fixedpoint: invalid format")

// ErrDivisionByZero is returned by Divide and DivideInt when the divisor is zero.
var ErrDivisionByZero = errors.New("fixedpoint: division by zero")

// ErrScaleMismatch is returned when a binary operation is given operands
// of differing scale.
var ErrScaleMismatch = errors.New("fixedpoint: scale mismatch")

// ErrInvalidArgument is returned for out-of-range configuration, such as
// an unrecognised rounding mode.
var ErrInvalidArgument = errors.New("fixedpoint: invalid argument")

// RoundingMode selects how excess precision is resolved.
type RoundingMode int

const (
	// Truncate rounds toward zero, discarding excess digits.
	Truncate RoundingMode = iota
	// Ceil rounds toward positive infinity.
	Ceil
	// Floor rounds toward negative infinity.
	Floor
	// Round rounds half to even (banker's rounding).
	Round
)

// ScaledInt is an arbitrary-precision integer v paired with a scale s,
// representing the rational value v * 10^-s.
type ScaledInt struct {
	V *big.Int
	S uint
}

// New wraps v at scale s.
func New(v *big.Int, s uint) ScaledInt {
	return ScaledInt{V: new(big.Int).Set(v), S: s}
}

// FromInt64 wraps the int64 i at scale s.
func FromInt64(i int64, s uint) ScaledInt {
	return ScaledInt{V: big.NewInt(i), S: s}
}

// Zero returns the scaled integer 0 at scale s.
func Zero(s uint) ScaledInt {
	return ScaledInt{V: big.NewInt(0), S: s}
}

// IsZero reports whether x is exactly zero.
func (x ScaledInt) IsZero() bool {
	return x.V.Sign() == 0
}

// Sign returns -1, 0, or +1 depending on the sign of x.
func (x ScaledInt) Sign() int {
	return x.V.Sign()
}

// Neg returns -x.
func (x ScaledInt) Neg() ScaledInt {
	return ScaledInt{V: new(big.Int).Neg(x.V), S: x.S}
}

// Abs returns |x|.
func (x ScaledInt) Abs() ScaledInt {
	return ScaledInt{V: new(big.Int).Abs(x.V), S: x.S}
}

// Cmp requires a and b to share a scale and returns -1, 0, or +1 as
// a is less than, equal to, or greater than b.
func Cmp(a, b ScaledInt) (int, error) {
	if a.S != b.S {
		return 0, fmt.Errorf("%w: %d vs %d", ErrScaleMismatch, a.S, b.S)
	}
	return a.V.Cmp(b.V), nil
}

func requireSameScale(a, b ScaledInt) error {
	if a.S != b.S {
		return fmt.Errorf("%w: %d vs %d", ErrScaleMismatch, a.S, b.S)
	}
	return nil
}

// Add returns a + b. Requires a.S == b.S; the result's scale is a.S.
func Add(a, b ScaledInt) (ScaledInt, error) {
	if err := requireSameScale(a, b); err != nil {
		return ScaledInt{}, err
	}
	return ScaledInt{V: new(big.Int).Add(a.V, b.V), S: a.S}, nil
}

// Sub returns a - b. Requires a.S == b.S; the result's scale is a.S.
func Sub(a, b ScaledInt) (ScaledInt, error) {
	if err := requireSameScale(a, b); err != nil {
		return ScaledInt{}, err
	}
	return ScaledInt{V: new(big.Int).Sub(a.V, b.V), S: a.S}, nil
}

// Mul returns a * b with the underlying integers multiplied directly and
// the scale preserved (not doubled). Requires a.S == b.S.
//
// This matches the monetary convention of multiplying a scaled amount by
// a plain scaled count: for a true decimal product at an explicit result
// scale, use MulRescale instead.
func Mul(a, b ScaledInt) (ScaledInt, error) {
	if err := requireSameScale(a, b); err != nil {
		return ScaledInt{}, err
	}
	return ScaledInt{V: new(big.Int).Mul(a.V, b.V), S: a.S}, nil
}

// MulRescale returns the mathematically correct decimal product a*b,
// rounded to resultScale using mode. Unlike Mul, a and b may have
// different scales.
//
// This is a supplemental convenience beyond spec.md's literal Multiply
// operation, needed for the monetary/allocation libraries that sit on
// top of this core (spec.md section 3) to compute correct products
// rather than scale-preserving ones.
func MulRescale(a, b ScaledInt, resultScale uint, mode RoundingMode) (ScaledInt, error) {
	product := new(big.Int).Mul(a.V, b.V)
	productScale := a.S + b.S
	return ConvertScale(ScaledInt{V: product, S: productScale}, resultScale, mode)
}

// Divide divides x.V by the plain integer divisor, applying mode to
// resolve the remainder, and returns a ScaledInt with x's scale
// preserved. Returns ErrDivisionByZero if divisor is zero.
func Divide(x ScaledInt, divisor *big.Int, mode RoundingMode) (ScaledInt, error) {
	q, err := DivideInt(x.V, divisor, mode)
	if err != nil {
		return ScaledInt{}, err
	}
	return ScaledInt{V: q, S: x.S}, nil
}

// DivideScaled computes the true ratio a/b (not a's integer divided by a
// plain count), rounded to resultScale using mode. a and b may have
// different scales.
//
// This is a supplemental convenience for splitting one monetary amount
// by another (e.g. allocation ratios), beyond spec.md's literal Divide
// operation which divides by a plain integer.
func DivideScaled(a, b ScaledInt, resultScale uint, mode RoundingMode) (ScaledInt, error) {
	if b.V.Sign() == 0 {
		return ScaledInt{}, ErrDivisionByZero
	}
	// a.V/10^a.S  /  b.V/10^b.S  *  10^resultScale
	// = a.V * 10^(resultScale + b.S - a.S) / b.V
	shift := int(resultScale) + int(b.S) - int(a.S)
	numerator := new(big.Int).Set(a.V)
	if shift >= 0 {
		numerator.Mul(numerator, pow10(uint(shift)))
		q, err := DivideInt(numerator, b.V, mode)
		if err != nil {
			return ScaledInt{}, err
		}
		return ScaledInt{V: q, S: resultScale}, nil
	}
	denominator := new(big.Int).Mul(b.V, pow10(uint(-shift)))
	q, err := DivideInt(numerator, denominator, mode)
	if err != nil {
		return ScaledInt{}, err
	}
	return ScaledInt{V: q, S: resultScale}, nil
}

// DivideInt is the core rounding-division primitive shared by Divide and
// ConvertScale: computes q = a/b truncated toward zero and r = a - q*b,
// then resolves q according to mode and the sign/magnitude of r.
//
// Returns ErrDivisionByZero if b is zero.
func DivideInt(a, b *big.Int, mode RoundingMode) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, ErrDivisionByZero
	}

	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() == 0 {
		return q, nil
	}

	switch mode {
	case Truncate:
		return q, nil
	case Ceil:
		// Toward +infinity: bump up iff the true quotient is not already
		// an integer and the exact value exceeds q, i.e. r and b have the
		// same sign (the remainder pushes the quotient up).
		if sameSign(r, b) {
			return q.Add(q, big.NewInt(1)), nil
		}
		return q, nil
	case Floor:
		// Toward -infinity: symmetric to Ceil.
		if !sameSign(r, b) {
			return q.Sub(q, big.NewInt(1)), nil
		}
		return q, nil
	case Round:
		twiceR := new(big.Int).Abs(r)
		twiceR.Lsh(twiceR, 1)
		absB := new(big.Int).Abs(b)
		cmp := twiceR.Cmp(absB)
		switch {
		case cmp < 0:
			// Less than half: round toward zero.
			return q, nil
		case cmp > 0:
			// More than half: round away from zero.
			return awayFromZero(q, r, b), nil
		default:
			// Exactly half: round to even.
			if q.Bit(0) == 0 {
				return q, nil
			}
			return awayFromZero(q, r, b), nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown rounding mode %d", ErrInvalidArgument, mode)
	}
}

func sameSign(a, b *big.Int) bool {
	return (a.Sign() >= 0) == (b.Sign() >= 0)
}

func awayFromZero(q, r, b *big.Int) *big.Int {
	if sameSign(r, b) {
		return q.Add(q, big.NewInt(1))
	}
	return q.Sub(q, big.NewInt(1))
}

// ConvertScale rescales x to the new scale toS, applying mode when
// toS < x.S discards precision.
func ConvertScale(x ScaledInt, toS uint, mode RoundingMode) (ScaledInt, error) {
	if toS == x.S {
		return ScaledInt{V: new(big.Int).Set(x.V), S: toS}, nil
	}
	if toS > x.S {
		factor := pow10(toS - x.S)
		return ScaledInt{V: new(big.Int).Mul(x.V, factor), S: toS}, nil
	}
	factor := pow10(x.S - toS)
	q, err := DivideInt(x.V, factor, mode)
	if err != nil {
		return ScaledInt{}, err
	}
	return ScaledInt{V: q, S: toS}, nil
}

func pow10(n uint) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(uint64(n)), nil)
}

// Parse parses a decimal literal (optional sign, digits, optional
// fractional part) at scale s, applying mode to any fractional digits
// beyond s. Returns ErrInvalidFormat for malformed input.
func Parse(text string, s uint, mode RoundingMode) (ScaledInt, error) {
	orig := text
	text = strings.TrimSpace(text)
	if text == "" {
		return ScaledInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, orig)
	}

	neg := false
	switch text[0] {
	case '+':
		text = text[1:]
	case '-':
		neg = true
		text = text[1:]
	}
	if text == "" {
		return ScaledInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, orig)
	}

	intPart := text
	fracPart := ""
	if idx := strings.IndexByte(text, '.'); idx >= 0 {
		intPart = text[:idx]
		fracPart = text[idx+1:]
	}
	if intPart == "" && fracPart == "" {
		return ScaledInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, orig)
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return ScaledInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, orig)
	}

	var v *big.Int
	var err error
	if uint(len(fracPart)) <= s {
		padded := intPart + fracPart + strings.Repeat("0", int(s)-len(fracPart))
		v, _ = new(big.Int).SetString(padded, 10)
	} else {
		kept := fracPart[:s]
		excess := fracPart[s:]
		combined := intPart + kept
		base, ok := new(big.Int).SetString(combined, 10)
		if !ok {
			return ScaledInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, orig)
		}
		// Build a (base, excess) pair and round the excess digits off using
		// the same primitive as ConvertScale: treat it as converting from
		// scale s+len(excess) down to scale s.
		excessVal, ok := new(big.Int).SetString(excess, 10)
		if !ok {
			return ScaledInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, orig)
		}
		full := new(big.Int).Mul(base, pow10(uint(len(excess))))
		full.Add(full, excessVal)
		// Apply the sign before rounding so Ceil and Floor round toward
		// the right infinity for negative values.
		if neg {
			full.Neg(full)
			neg = false
		}
		v, err = DivideInt(full, pow10(uint(len(excess))), mode)
		if err != nil {
			return ScaledInt{}, err
		}
	}
	if v == nil {
		return ScaledInt{}, fmt.Errorf("%w: %q", ErrInvalidFormat, orig)
	}
	if neg {
		v.Neg(v)
	}
	return ScaledInt{V: v, S: s}, nil
}

// MustParse is like Parse but panics on error. Intended for known-good
// literals, e.g. package-level constants in tests.
func MustParse(text string, s uint, mode RoundingMode) ScaledInt {
	x, err := Parse(text, s, mode)
	if err != nil {
		panic(err)
	}
	return x
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Format renders x as a decimal string. If s == 0, no decimal point is
// emitted. Otherwise the integer part is zero-padded to at least s+1
// digits, split at the implied decimal point, and trailing zeros (and a
// dangling '.') are trimmed when trimTrailingZeros is true.
func (x ScaledInt) Format(trimTrailingZeros bool) string {
	neg := x.V.Sign() < 0
	digits := new(big.Int).Abs(x.V).String()

	if x.S == 0 {
		if neg {
			return "-" + digits
		}
		return digits
	}

	s := int(x.S)
	if len(digits) < s+1 {
		digits = strings.Repeat("0", s+1-len(digits)) + digits
	}
	intPart := digits[:len(digits)-s]
	fracPart := digits[len(digits)-s:]

	if trimTrailingZeros {
		fracPart = strings.TrimRight(fracPart, "0")
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

// String implements fmt.Stringer, formatting with trailing zeros trimmed.
func (x ScaledInt) String() string {
	return x.Format(true)
}
