// Package formatting converts byte sizes between counts and human-readable strings.
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB"}

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]*)$`)

// FormatBytes renders n using base-1024 units with the given decimal precision.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}

	exp := min(int(math.Log(float64(n))/math.Log(1024)), len(units)-1)
	size := float64(n) / math.Pow(1024, float64(exp))

	return strconv.FormatFloat(size, 'f', max(precision, 0), 64) + " " + units[exp]
}

// ParseBytes parses a size such as "50MB" or "512 kb" into a byte count.
// A bare number is a count of bytes.
func ParseBytes(s string) (int64, error) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	exp := 0
	if unit := strings.ToUpper(m[2]); unit != "" {
		if exp = slices.Index(units, unit); exp < 0 {
			return 0, fmt.Errorf("unknown byte size unit: %q", m[2])
		}
	}

	return int64(value * math.Pow(1024, float64(exp))), nil
}
