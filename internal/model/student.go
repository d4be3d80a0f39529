package model

import (
	"strings"

	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/constant"
)

type Student struct {
	bun.BaseModel `bun:"students,alias:s"`

	ID           int    `bun:"id,pk" json:"id"`
	Name         string `json:"name"`
	Program      string `json:"program"`
	Faculty      string `json:"faculty"`
	DaysAttended string `json:"daysAttended"`
}

// Days splits a comma-joined days_attended value back into weekday names.
func Days(daysAttended string) []string {
	if daysAttended == "" {
		return nil
	}
	parts := strings.Split(daysAttended, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			days = append(days, p)
		}
	}
	return days
}

// JoinDays is the inverse of Days.
func JoinDays(days []string) string {
	return strings.Join(days, constant.DaysSeparator)
}
