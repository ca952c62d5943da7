package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts a whole-unit amount entered by a user ("65.5") to
// minor units (6550), rounding to the nearest unit.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative", ErrInvalidAmount)
	}
	minor := math.Round(v * 100)
	if minor >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return int64(minor), nil
}

// FormatAmount renders minor units as whole units with two decimals.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
