package fetcher

import (
	"strconv"
	"strings"
)

// parseMetric converts abbreviated metric strings like "1.2K", "5.7M", or
// "423" to integers. Unparseable input counts as 0, the same as a missing
// metric.
func parseMetric(s string) int {
	if s == "" {
		return 0
	}

	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(strings.ToUpper(s), "K"):
		multiplier = 1000
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToUpper(s), "M"):
		multiplier = 1000000
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToUpper(s), "B"):
		multiplier = 1000000000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return int(value * multiplier)
}
