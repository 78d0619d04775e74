package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returning fallback when it is empty or invalid.
func ParseDuration(durationStr string, fallback time.Duration) time.Duration {
	if durationStr == "" {
		return fallback
	}
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("fallback", fallback).Msg("Failed to parse duration string, using fallback")
		return fallback
	}
	return duration
}
