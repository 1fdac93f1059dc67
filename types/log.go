package types

import "time"

// LogEntry is an in-flight request log handed to the async logger
type LogEntry struct {
	ID           uint
	RequestID    string
	Method       string
	Path         string
	ClientIP     string
	RequestBody  string
	ResponseBody string
	StatusCode   int
	LatencyMs    int64
	CreatedAt    time.Time
}
