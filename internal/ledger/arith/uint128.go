package arith

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/bits"

	"github.com/holiman/uint256"
)

const bitSize = 128

var (
	ErrOverflow       = errors.New("overflow")
	ErrUnderflow      = errors.New("underflow")
	ErrDivisionByZero = errors.New("division by zero")
)

// Uint128 is an unsigned 128-bit integer. Every arithmetic method is checked:
// results that do not fit in 128 bits are reported instead of wrapping.
type Uint128 struct {
	v uint256.Int
}

func Zero() Uint128 {
	return Uint128{}
}

func NewUint128(x uint64) Uint128 {
	var u Uint128
	u.v.SetUint64(x)
	return u
}

// ParseUint128 parses a base-10 string.
func ParseUint128(s string) (Uint128, error) {
	var u Uint128
	if err := u.v.SetFromDecimal(s); err != nil {
		return Uint128{}, fmt.Errorf("invalid uint128 %q: %w", s, err)
	}
	if u.v.BitLen() > bitSize {
		return Uint128{}, fmt.Errorf("invalid uint128 %q: %w", s, ErrOverflow)
	}
	return u, nil
}

func MustParseUint128(s string) Uint128 {
	u, err := ParseUint128(s)
	if err != nil {
		panic(err)
	}
	return u
}

func (u Uint128) IsZero() bool {
	return u.v.IsZero()
}

func (u Uint128) Cmp(o Uint128) int {
	return u.v.Cmp(&o.v)
}

func (u Uint128) Eq(o Uint128) bool {
	return u.v.Eq(&o.v)
}

func (u Uint128) Lt(o Uint128) bool {
	return u.v.Lt(&o.v)
}

func (u Uint128) Gt(o Uint128) bool {
	return u.v.Gt(&o.v)
}

// Uint64 returns the value and whether it fits in 64 bits.
func (u Uint128) Uint64() (uint64, bool) {
	return u.v.Uint64(), u.v.IsUint64()
}

func (u Uint128) String() string {
	return u.v.Dec()
}

func (u Uint128) CheckedAdd(o Uint128) (Uint128, error) {
	var r Uint128
	r.v.Add(&u.v, &o.v)
	if r.v.BitLen() > bitSize {
		return Uint128{}, fmt.Errorf("%s + %s: %w", u, o, ErrOverflow)
	}
	return r, nil
}

func (u Uint128) CheckedSub(o Uint128) (Uint128, error) {
	if u.v.Lt(&o.v) {
		return Uint128{}, fmt.Errorf("%s - %s: %w", u, o, ErrUnderflow)
	}
	var r Uint128
	r.v.Sub(&u.v, &o.v)
	return r, nil
}

// CheckedMul multiplies in 256-bit space, so the product of two 128-bit
// operands never wraps before the width check.
func (u Uint128) CheckedMul(o Uint128) (Uint128, error) {
	var r Uint128
	r.v.Mul(&u.v, &o.v)
	if r.v.BitLen() > bitSize {
		return Uint128{}, fmt.Errorf("%s * %s: %w", u, o, ErrOverflow)
	}
	return r, nil
}

// CheckedDiv is floor division.
func (u Uint128) CheckedDiv(o Uint128) (Uint128, error) {
	if o.v.IsZero() {
		return Uint128{}, fmt.Errorf("%s / 0: %w", u, ErrDivisionByZero)
	}
	var r Uint128
	r.v.Div(&u.v, &o.v)
	return r, nil
}

func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON accepts a decimal string and, for hand-written payloads, a
// bare non-negative JSON number.
func (u *Uint128) UnmarshalJSON(data []byte) error {
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	parsed, err := ParseUint128(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u Uint128) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Uint128) UnmarshalText(text []byte) error {
	parsed, err := ParseUint128(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

// CheckedAddUint64 adds two uint64 values, reporting overflow.
func CheckedAddUint64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%d + %d: %w", a, b, ErrOverflow)
	}
	return sum, nil
}

func CheckedSubUint64(a, b uint64) (uint64, error) {
	if a < b {
		return 0, fmt.Errorf("%d - %d: %w", a, b, ErrUnderflow)
	}
	return a - b, nil
}

func CheckedMulUint64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, fmt.Errorf("%d * %d: %w", a, b, ErrOverflow)
	}
	return lo, nil
}
