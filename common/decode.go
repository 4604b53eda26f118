package common

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	MinBase = 2
	MaxBase = 36
)

var (
	ErrDecode      = errors.New("decode error")
	ErrInvalidBase = fmt.Errorf("%w: base out of range [%d,%d]", ErrDecode, MinBase, MaxBase)
)

// Returns the numeric value of a single digit character, or -1 if the
// character is not a digit or letter.
func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// ParseBase parses the decimal base string of a sample and checks it is in
// [MinBase, MaxBase].
func ParseBase(raw string) (int, error) {
	base, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: base %q is not an integer", ErrDecode, raw)
	}
	if base < MinBase || base > MaxBase {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidBase, base)
	}
	return base, nil
}

// DecodeValue interprets digits as a non-negative integer literal written in
// the given base. Digits above 9 are letters, case-insensitive.
func DecodeValue(base int, digits string) (*big.Int, error) {
	if base < MinBase || base > MaxBase {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBase, base)
	}
	if digits == "" {
		return nil, fmt.Errorf("%w: empty value", ErrDecode)
	}

	for i := 0; i < len(digits); i++ {
		d := digitValue(digits[i])
		if d < 0 || d >= base {
			return nil, fmt.Errorf(
				"%w: invalid digit %q at position %d for base %d",
				ErrDecode, digits[i], i, base,
			)
		}
	}

	// Every character was validated above, so SetString cannot see a sign,
	// prefix or underscore here.
	value, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse %q in base %d", ErrDecode, digits, base)
	}
	return value, nil
}

// EncodeValue is the inverse of DecodeValue for non-negative values. Letters
// are lowercase.
func EncodeValue(base int, value *big.Int) (string, error) {
	if base < MinBase || base > MaxBase {
		return "", fmt.Errorf("%w: got %d", ErrInvalidBase, base)
	}
	if value.Sign() < 0 {
		return "", fmt.Errorf("%w: negative value %s", ErrDecode, value.String())
	}
	return value.Text(base), nil
}
