// Package filter narrows an in-memory book list by keyword, rating range
// and read-date range.
//
// The rating and date checks are deliberately permissive: a record whose
// rating or read_on value cannot be parsed is passed through rather than
// excluded. Existing database files contain such values and the historical
// behavior is to show them regardless of the active filter.
package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/mrlokans/readinglog/internal/entities"
)

// Spec describes one filter request. Zero values mean "no restriction" for
// the keywords; the date bounds only apply when UseDateRange is set, and a
// zero Start or End leaves that side unbounded.
type Spec struct {
	TitleKeyword  string
	AuthorKeyword string
	RatingMin     float64
	RatingMax     float64
	UseDateRange  bool
	Start         time.Time
	End           time.Time
}

// readOnLayouts are the accepted read_on formats, tried in order.
var readOnLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Apply returns the books matching spec, preserving the input order. The
// input slice is not modified.
func Apply(books []entities.Book, spec Spec) []entities.Book {
	tkw := strings.ToLower(strings.TrimSpace(spec.TitleKeyword))
	akw := strings.ToLower(strings.TrimSpace(spec.AuthorKeyword))

	out := make([]entities.Book, 0, len(books))
	for _, b := range books {
		if tkw != "" && !strings.Contains(strings.ToLower(b.Title), tkw) {
			continue
		}
		if akw != "" && !strings.Contains(strings.ToLower(b.AuthorName()), akw) {
			continue
		}
		if excludedByRating(b.Rating, spec.RatingMin, spec.RatingMax) {
			continue
		}
		if spec.UseDateRange && excludedByDate(b.ReadOn, spec.Start, spec.End) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// excludedByRating reports whether the rating parses as a number outside
// [min, max]. Absent or unparsable ratings never exclude.
func excludedByRating(rating string, min, max float64) bool {
	if rating == "" {
		return false
	}
	r, err := strconv.ParseFloat(strings.TrimSpace(rating), 64)
	if err != nil {
		return false
	}
	return r < min || r > max
}

// excludedByDate reports whether the read date is known and strictly
// outside [start, end]. Absent or unparsable dates never exclude.
func excludedByDate(readOn string, start, end time.Time) bool {
	d, ok := ParseReadOn(readOn)
	if !ok {
		return false
	}
	if !start.IsZero() && d.Before(truncateToDay(start)) {
		return true
	}
	if !end.IsZero() && d.After(truncateToDay(end)) {
		return true
	}
	return false
}

// ParseReadOn parses a read_on value against the accepted layouts,
// returning the date component only.
func ParseReadOn(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range readOnLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateToDay(t), true
		}
	}
	return time.Time{}, false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
