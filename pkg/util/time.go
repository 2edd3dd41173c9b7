package util

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ParseDuration parses durations in config notation. On top of the standard
// library units it accepts a d suffix for days: "7d", "24h", "30m", "10s".
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid day duration %q", s)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid duration %q", s)
	}
	return d, nil
}
