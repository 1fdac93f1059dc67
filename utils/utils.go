package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cobbler-shop/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/now"
)

// ParseID parses a numeric path parameter and rejects zero/negative ids.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s '%s'", name, raw)
	}
	return uint(id), nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", value)
	}
	return t, nil
}

// ParseDateTime accepts either RFC3339 or "YYYY-MM-DD HH:MM:SS".
func ParseDateTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp '%s'", value)
	}
	return t, nil
}

// DayBounds returns the inclusive start and exclusive end of t's day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := now.With(t).BeginningOfDay()
	return start, start.AddDate(0, 0, 1)
}

// WeekBounds returns the start and exclusive end of t's week.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	start := now.With(t).BeginningOfWeek()
	return start, start.AddDate(0, 0, 7)
}

// MonthBounds returns the start and exclusive end of a calendar month.
func MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

// SaveBillFile writes an uploaded bill to disk under a uuid filename and
// returns the public URL path to store on the expense row.
func SaveBillFile(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if file.Size > constants.MaxUploadSizeMB*1024*1024 {
		return "", fmt.Errorf("file exceeds %dMB limit", constants.MaxUploadSizeMB)
	}

	if err := os.MkdirAll(constants.BillUploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	fileName := uuid.New().String() + ext
	dest := filepath.Join(constants.BillUploadDir, fileName)

	if err := c.SaveFile(file, dest); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/" + filepath.ToSlash(dest), nil
}
