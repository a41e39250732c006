// Package format renders durations and sizes for status lines.
package format

import (
	"fmt"
	"strconv"
)

const (
	minute = 60
	hour   = 60 * minute
)

// Seconds formats a number of seconds as "42s", "3m 5s" or "1h 2m 3s".
// Sub-minute values keep their fraction; the larger units truncate.
func Seconds(n float64) string {
	if n < minute {
		return strconv.FormatFloat(n, 'f', -1, 64) + "s"
	}
	s := int64(n)
	if n < hour {
		return fmt.Sprintf("%dm %ds", s/minute, s%minute)
	}
	return fmt.Sprintf("%dh %dm %ds", s/hour, (s%hour)/minute, s%minute)
}

// Bytes formats a byte count using 1024-based units with one decimal.
func Bytes(n int64) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d Bytes", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	case n < unit*unit*unit:
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	}
	return fmt.Sprintf("%.1f GB", float64(n)/(unit*unit*unit))
}
