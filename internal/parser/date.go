package parser

import (
	"regexp"
	"strconv"
	"time"
)

var dateSlugRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// LongDateLayout renders dates as "March 5, 2024".
const LongDateLayout = "January 2, 2006"

// FormatSlug returns the long form of a YYYY-MM-DD slug, or the slug itself
// when it does not encode a date. Out-of-range fields (month 13, day 00)
// roll over the way time.Date normalises them.
func FormatSlug(slug string) string {
	t, ok := ParseDateSlug(slug)
	if !ok {
		return slug
	}
	return t.Format(LongDateLayout)
}

// ParseDateSlug parses a YYYY-MM-DD slug into a UTC midnight time.
func ParseDateSlug(slug string) (time.Time, bool) {
	m := dateSlugRe.FindStringSubmatch(slug)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	// Two-digit years land in the 1900s, as they do on the published site.
	if year < 100 {
		year += 1900
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
