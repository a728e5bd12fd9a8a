package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitlog/internal/core"
)

// parseRefDate extracts the report reference date from the "date" query
// parameter. Missing or invalid values default to today.
func parseRefDate(r *http.Request) time.Time {
	if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
		if t, err := time.Parse(core.DateLayout, v); err == nil {
			return t
		}
	}
	return time.Now()
}

// splitTraining parses the training form value: either repeated fields or a
// single comma separated string. Empty entries are dropped.
func splitTraining(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
