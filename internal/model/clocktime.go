package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidClockTime = errors.New("model: invalid clock time")

// ParseClockTime parses a 24-hour "HH:MM" wall-clock string.
func ParseClockTime(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return hour, minute, nil
}
