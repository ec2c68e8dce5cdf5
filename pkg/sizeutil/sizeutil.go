// Package sizeutil converts between human-readable size strings and byte counts.
package sizeutil

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidFormat indicates a size string that cannot be parsed.
var ErrInvalidFormat = errors.New("invalid size format")

var multipliers = map[string]int64{
	"KB": 1 << 10,
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

var formatUnits = []string{"B", "KB", "MB", "GB", "TB"}

// ParseSize converts a size string like "100MB" or "1.5GB" to a byte count.
// A bare integer is taken as bytes. Units are case-insensitive binary
// multiples (KB, MB, GB, TB). An unrecognized suffix is an error, never a
// silent fallback to bytes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)

	i := 0
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	if i == 0 {
		return 0, fmt.Errorf("%w: %q has no numeric part", ErrInvalidFormat, s)
	}

	num := s[:i]
	unit := strings.ToUpper(strings.TrimSpace(s[i:]))

	if unit == "" {
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a whole byte count", ErrInvalidFormat, s)
		}
		return n, nil
	}

	mult, ok := multipliers[unit]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q in %q", ErrInvalidFormat, unit, s)
	}

	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q in %q", ErrInvalidFormat, num, s)
	}

	return int64(f * float64(mult)), nil
}

// FormatSize renders a byte count with the largest binary unit that keeps the
// scaled value under 1024, capped at TB. Whole values print without decimals,
// fractional values with two.
func FormatSize(n int64) string {
	v := float64(n)
	idx := 0
	for v >= 1024 && idx < len(formatUnits)-1 {
		v /= 1024
		idx++
	}

	if v == math.Trunc(v) {
		return fmt.Sprintf("%d %s", int64(v), formatUnits[idx])
	}
	return fmt.Sprintf("%.2f %s", v, formatUnits[idx])
}
