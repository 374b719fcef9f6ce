package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/confidence-group/hr-analytics-go/internal/domain/analytics"
	"github.com/confidence-group/hr-analytics-go/internal/pkg/rowmap"
)

// Attendance export columns. Resolved through rowmap so header drift
// (case, stray spaces) still hits.
var (
	flagKeys     = []string{"Flag"}
	isLateKeys   = []string{"Is Late"}
	shiftInKeys  = []string{"Shift In Time"}
	shiftOutKeys = []string{"Shift Out Time"}
	inTimeKeys   = []string{"In Time"}
	outTimeKeys  = []string{"Out Time"}
)

var monthLabels = []string{"", "January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December"}

type cellKey struct {
	week       string
	group      string
	department string
}

type cell struct {
	year, month, week int
	companyShort      string

	members      map[string]struct{}
	present      int
	late         int
	onTime       int
	shiftHours   float64
	workHours    float64
	completed    int
	workDays     int
	lostHours    float64
	leaveMembers map[string]struct{}
	sl, cl, a    int
	leaveDays    int
}

// ComputeWeekly runs the single-pass weekly aggregation over raw attendance
// rows. When breakdown is "department" and groupBy is "function" it also
// returns unfiltered company-month rollups; otherwise that slice is nil.
// Bad rows (unparseable date, no identity) are skipped, never fatal.
func ComputeWeekly(rows []rowmap.Row, groupBy analytics.GroupBy, breakdown string, companyShortNames map[string]string) ([]analytics.WeeklyRow, []analytics.CompanyMonthTotal, error) {
	if !groupBy.Valid() {
		return nil, nil, analytics.ErrInvalidGroupBy
	}

	knownShorts := make(map[string]struct{}, len(companyShortNames))
	for _, short := range companyShortNames {
		knownShorts[strings.ToUpper(short)] = struct{}{}
	}
	splitByDepartment := breakdown == analytics.BreakdownDepartment && groupBy == analytics.GroupByFunction

	cells := make(map[cellKey]*cell)

	for _, row := range rows {
		date, ok := ParseDate(row.Get(rowmap.DateKeys...))
		if !ok {
			continue
		}
		year, month, week := WeekKey(date)
		weekStr := FormatWeekKey(year, month, week)

		var group, companyShort string
		switch groupBy {
		case analytics.GroupByFunction:
			companyShort = shortCompany(row.Get(rowmap.CompanyKeys...), companyShortNames)
			base := stripCompanySuffix(row.Get(rowmap.FunctionKeys...), knownShorts)
			switch {
			case companyShort != "" && base != "":
				group = companyShort + " - " + base
			case base != "":
				group = base
			case companyShort != "":
				group = companyShort
			default:
				group = "Unknown"
			}
		case analytics.GroupByCompany:
			raw := row.Get(rowmap.CompanyKeys...)
			if raw == "" {
				continue
			}
			group = shortCompany(raw, companyShortNames)
			companyShort = group
		case analytics.GroupByLocation:
			group = row.Get(rowmap.LocationKeys...)
			if group == "" {
				continue
			}
		}

		memberID := row.Get(rowmap.EmployeeCodeKeys...)
		if memberID == "" {
			memberID = row.Get(rowmap.NameKeys...)
		}
		if memberID == "" {
			continue
		}

		department := ""
		if splitByDepartment {
			department = row.Get(rowmap.DepartmentKeys...)
		}

		key := cellKey{week: weekStr, group: group, department: department}
		c, ok := cells[key]
		if !ok {
			c = &cell{
				year: year, month: month, week: week,
				companyShort: companyShort,
				members:      make(map[string]struct{}),
				leaveMembers: make(map[string]struct{}),
			}
			cells[key] = c
		}

		c.members[memberID] = struct{}{}
		c.leaveMembers[memberID] = struct{}{}

		flag := row.Get(flagKeys...)
		isLate := strings.EqualFold(row.Get(isLateKeys...), "yes")

		if flag == "P" {
			c.present++
			if isLate {
				c.late++
			} else {
				c.onTime++
			}
		}

		// Weekends and holidays never count toward hour sums or loss.
		if flag != "W" && flag != "H" {
			shiftHours := durationHours(row.Get(shiftInKeys...), row.Get(shiftOutKeys...))
			workHours := durationHours(row.Get(inTimeKeys...), row.Get(outTimeKeys...))
			if shiftHours > 0 || workHours > 0 {
				c.shiftHours += shiftHours
				c.workHours += workHours
				c.workDays++
				if (flag == "P" || flag == "OD") && workHours >= shiftHours && shiftHours > 0 {
					c.completed++
				}
				if shiftHours > 0 && workHours < shiftHours {
					c.lostHours += shiftHours - workHours
				}
			}
		}

		switch flag {
		case "SL":
			c.sl++
			c.leaveDays++
		case "CL":
			c.cl++
			c.leaveDays++
		case "A":
			c.a++
			c.leaveDays++
		}
	}

	results := make([]analytics.WeeklyRow, 0, len(cells))
	for key, c := range cells {
		monthName := fmt.Sprintf("Month%d", c.month)
		if c.month >= 1 && c.month <= 12 {
			monthName = monthLabels[c.month]
		}
		lost := round2(c.lostHours)
		results = append(results, analytics.WeeklyRow{
			Week:          key.week,
			Year:          c.year,
			Month:         c.month,
			MonthName:     monthName,
			WeekInMonth:   c.week,
			Group:         key.group,
			Department:    key.department,
			Members:       len(c.members),
			Present:       c.present,
			Late:          c.late,
			OnTime:        c.onTime,
			OnTimePct:     pct(float64(c.onTime), float64(c.present)),
			ShiftHours:    round2(c.shiftHours),
			WorkHours:     round2(c.workHours),
			Completed:     c.completed,
			TotalWorkDays: c.workDays,
			CompletionPct: pct(float64(c.completed), float64(c.workDays)),
			LostHours:     lost,
			LostPct:       pct(c.lostHours, c.shiftHours),
			Lost:          lost,
			LeaveMembers:  len(c.leaveMembers),
			SL:            c.sl,
			CL:            c.cl,
			A:             c.a,
			SLPct:         pct(float64(c.sl), float64(c.leaveDays)),
			CLPct:         pct(float64(c.cl), float64(c.leaveDays)),
			APct:          pct(float64(c.a), float64(c.leaveDays)),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.WeekInMonth != b.WeekInMonth {
			return a.WeekInMonth < b.WeekInMonth
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Department < b.Department
	})

	if !splitByDepartment {
		return results, nil, nil
	}
	return results, companyRollups(cells), nil
}

// companyRollups sums every department-split cell into per-company,
// per-month totals. Deliberately never scope-filtered: narrow-scoped users
// still get accurate company-wide cost cards.
func companyRollups(cells map[cellKey]*cell) []analytics.CompanyMonthTotal {
	type rollupKey struct {
		month   string
		company string
	}
	agg := make(map[rollupKey]*analytics.CompanyMonthTotal)
	for _, c := range cells {
		if c.companyShort == "" {
			continue
		}
		key := rollupKey{month: fmt.Sprintf("%d-%02d", c.year, c.month), company: c.companyShort}
		total, ok := agg[key]
		if !ok {
			total = &analytics.CompanyMonthTotal{Month: key.month, Company: key.company}
			agg[key] = total
		}
		total.Members += len(c.members)
		total.ShiftHours += c.shiftHours
		total.WorkHours += c.workHours
		total.LostHours += c.lostHours
	}

	totals := make([]analytics.CompanyMonthTotal, 0, len(agg))
	for _, t := range agg {
		t.ShiftHours = round2(t.ShiftHours)
		t.WorkHours = round2(t.WorkHours)
		t.LostHours = round2(t.LostHours)
		totals = append(totals, *t)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Month != totals[j].Month {
			return totals[i].Month < totals[j].Month
		}
		return totals[i].Company < totals[j].Company
	})
	return totals
}

// shortCompany maps a full company name to its short code, falling back to
// the name itself so unknown companies stay visible.
func shortCompany(name string, companyShortNames map[string]string) string {
	name = strings.TrimSpace(name)
	if short, ok := companyShortNames[name]; ok {
		return short
	}
	return name
}

// stripCompanySuffix removes a trailing " - CBL & CIPLC"-style segment from a
// function name when that segment mentions a known company short code.
func stripCompanySuffix(function string, knownShorts map[string]struct{}) string {
	function = strings.TrimSpace(function)
	if !strings.Contains(function, " - ") {
		return function
	}
	parts := strings.Split(function, " - ")
	last := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	for short := range knownShorts {
		if strings.Contains(last, short) {
			return strings.TrimSpace(strings.Join(parts[:len(parts)-1], " - "))
		}
	}
	return function
}

func pct(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0.0
	}
	return round2(numerator / denominator * 100.0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
