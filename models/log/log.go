package log

import (
	"time"
)

// Log is a persisted HTTP request/response audit entry.
type Log struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestID    string    `gorm:"type:varchar(36);index" json:"requestId"`
	Method       string    `gorm:"type:varchar(10);not null" json:"method"`
	Path         string    `gorm:"type:text;not null" json:"path"`
	ClientIP     string    `gorm:"type:varchar(45)" json:"clientIp"`
	RequestBody  string    `gorm:"type:text" json:"requestBody"`
	ResponseBody string    `gorm:"type:text" json:"responseBody"`
	StatusCode   int       `gorm:"type:int" json:"statusCode"`
	LatencyMs    int64     `gorm:"type:bigint" json:"latencyMs"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName sets the table name for the Log model
func (Log) TableName() string {
	return "logs"
}
