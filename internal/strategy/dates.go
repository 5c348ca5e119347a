package strategy

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ReferenceYear is assumed when parsing a display date like "10월 20일 (월)",
// which carries no year of its own.
const ReferenceYear = 2025

var koreanDateRegex = regexp.MustCompile(`(\d+)월\s*(\d+)일`)

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatKoreanDate renders t as "M월 D일 (요일)".
func FormatKoreanDate(t time.Time) string {
	return fmt.Sprintf("%d월 %d일 (%s)", int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
}

// DateResolver turns a strategy's anchor date plus per-action day offsets
// into concrete dates. Year and Location fill in what the localized date
// string omits; Now supplies the fallback anchor for unparseable input.
type DateResolver struct {
	Year     int
	Location *time.Location
	Now      func() time.Time
}

// NewDateResolver returns a resolver with the production defaults.
func NewDateResolver(loc *time.Location) DateResolver {
	if loc == nil {
		loc = time.Local
	}
	return DateResolver{Year: ReferenceYear, Location: loc, Now: time.Now}
}

// ParseKoreanDate extracts month and day from a "M월 D일" style string.
// Unparseable input falls back to today rather than failing: a bad date
// string should never block scheduling.
func (r DateResolver) ParseKoreanDate(value string) time.Time {
	m := koreanDateRegex.FindStringSubmatch(value)
	if m == nil {
		now := r.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.Location)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	return time.Date(r.Year, time.Month(month), day, 0, 0, 0, 0, r.Location)
}

// Anchor picks the date offsets count from: the session overlay when the
// user has chosen a start date, else the strategy's authored default.
func (r DateResolver) Anchor(s Strategy, overlay *time.Time) time.Time {
	if overlay != nil {
		return *overlay
	}
	return r.ParseKoreanDate(s.StartDate)
}

// Resolve maps every action index of s to anchor + daysFromStart civil
// days. It never mutates s; calling it again with the same inputs yields
// the same dates.
func (r DateResolver) Resolve(s Strategy, overlay *time.Time) map[int]time.Time {
	anchor := r.Anchor(s, overlay)
	dates := make(map[int]time.Time, len(s.ActionPlans))
	for i, plan := range s.ActionPlans {
		dates[i] = anchor.AddDate(0, 0, plan.DaysFromStart)
	}
	return dates
}
