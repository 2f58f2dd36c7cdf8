package util

import (
	"strconv"
	"time"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseSecondsDefault reads a positive number of seconds, or returns def.
func ParseSecondsDefault(s string, def time.Duration) time.Duration {
	if v := ParseIntDefault(s, 0); v > 0 {
		return time.Duration(v) * time.Second
	}
	return def
}
