package analytics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// excelEpoch is 1899-12-30: Excel counts from 1900-01-01 but wrongly treats
// 1900 as a leap year, so serial 1 maps two days back from the documented
// epoch.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ExcelSerialToDate converts an Excel date serial to a calendar date.
func ExcelSerialToDate(serial float64) time.Time {
	return excelEpoch.AddDate(0, 0, int(serial))
}

// DateToExcelSerial is the inverse of ExcelSerialToDate for whole days.
func DateToExcelSerial(t time.Time) float64 {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return float64(int(day.Sub(excelEpoch).Hours() / 24))
}

var (
	monthNamePattern = regexp.MustCompile(`(?i)(\d{1,2})[-/]([A-Za-z]{3,})[-/](20\d{2}|\d{2})`)
	isoPattern       = regexp.MustCompile(`(20\d{2})[-/](\d{1,2})[-/](\d{1,2})`)
	dmyPattern       = regexp.MustCompile(`(\d{1,2})[-/](\d{1,2})[-/](20\d{2})`)
	dmySlashPattern  = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(20\d{2})`)
)

// Ordered: abbreviations checked before full names, prefix match.
var monthNames = []struct {
	name  string
	month time.Month
}{
	{"jan", time.January}, {"feb", time.February}, {"mar", time.March},
	{"apr", time.April}, {"may", time.May}, {"jun", time.June},
	{"jul", time.July}, {"aug", time.August}, {"sep", time.September},
	{"sept", time.September}, {"oct", time.October}, {"nov", time.November},
	{"dec", time.December},
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"june", time.June}, {"july", time.July},
	{"august", time.August}, {"september", time.September}, {"october", time.October},
	{"november", time.November}, {"december", time.December},
}

var fallbackLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"2006.01.02",
	"01/02/2006", // US style
	"02-01-06",
	"02/01/06",
	"02-Jan-2006",
	"02-January-2006",
	"02/Jan/2006",
	"02/January/2006",
}

// ParseDate resolves the zoo of date formats attendance exports contain.
// Priority: Excel serial, day-monthname-year, YYYY-MM-DD, DD-MM-YYYY,
// DD/MM/YYYY, then layout fallbacks. Returns the zero time when nothing fits;
// callers skip such rows silently.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// Excel serial: any value with a decimal point, or an all-digit run
	// longer than a plausible year.
	if strings.Contains(s, ".") || (isAllDigits(s) && len(s) > 4) {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return ExcelSerialToDate(serial), true
		}
	}

	if m := monthNamePattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		name := strings.ToLower(m[2])
		for _, entry := range monthNames {
			if strings.HasPrefix(name, entry.name) {
				if day >= 1 && day <= 31 {
					return time.Date(year, entry.month, day, 0, 0, 0, 0, time.UTC), true
				}
				break
			}
		}
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	for _, pattern := range []*regexp.Regexp{dmyPattern, dmySlashPattern} {
		if m := pattern.FindStringSubmatch(s); m != nil {
			day, _ := strconv.Atoi(m[1])
			month, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
				return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
			}
		}
	}

	for _, layout := range fallbackLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			if parsed.Year() < 2000 {
				parsed = parsed.AddDate(2000, 0, 0)
			}
			return parsed, true
		}
	}

	return time.Time{}, false
}

// WeekKey buckets a date into its month-relative week: days 1-7 are week 1,
// 8-14 week 2, and so on. Not ISO weeks.
func WeekKey(date time.Time) (year, month, week int) {
	return date.Year(), int(date.Month()), ((date.Day() - 1) / 7) + 1
}

// FormatWeekKey renders a sortable "YYYY-MM-Wnn" key.
func FormatWeekKey(year, month, week int) string {
	return fmt.Sprintf("%d-%02d-W%02d", year, month, week)
}

// timeToHours converts a time cell to fractional hours. Accepts HH:MM[:SS],
// HH.MM, and Excel fractional-day serials (0 < v <= 1 means a fraction of 24h).
func timeToHours(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0.0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 && v <= 1 {
		return v * 24.0
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == '.' })
	if len(parts) < 2 {
		return 0.0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0.0
	}
	sec := 0
	if len(parts) > 2 {
		if v, err := strconv.Atoi(parts[2]); err == nil {
			sec = v
		}
	}
	return float64(h) + float64(m)/60.0 + float64(sec)/3600.0
}

// durationHours computes end minus start, rolling over midnight. Either side
// unparseable yields 0 so the row drops out of hour sums.
func durationHours(start, end string) float64 {
	startH := timeToHours(start)
	endH := timeToHours(end)
	if startH == 0.0 || endH == 0.0 {
		return 0.0
	}
	if endH < startH {
		endH += 24.0
	}
	if d := endH - startH; d > 0 {
		return d
	}
	return 0.0
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
