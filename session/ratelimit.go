package session

import (
	"net/http"
	"strconv"
	"time"
)

// RateLimit is the quota reported in a response's X-RateLimit-* headers. Fields are
// nil when the header is missing or unreadable.
type RateLimit struct {
	Limit     *int
	Remaining *int
	Reset     *time.Time
}

// ParseRateLimit reads the rate limit headers. It returns nil if none are present.
func ParseRateLimit(headers http.Header) *RateLimit {
	rateLimit := &RateLimit{
		Limit:     headerInt(headers, "X-RateLimit-Limit"),
		Remaining: headerInt(headers, "X-RateLimit-Remaining"),
	}
	if reset := headerInt(headers, "X-RateLimit-Reset"); reset != nil {
		resetAt := time.Unix(int64(*reset), 0)
		rateLimit.Reset = &resetAt
	}

	if rateLimit.Limit == nil && rateLimit.Remaining == nil && rateLimit.Reset == nil {
		return nil
	}
	return rateLimit
}

func headerInt(headers http.Header, name string) *int {
	value := headers.Get(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}
