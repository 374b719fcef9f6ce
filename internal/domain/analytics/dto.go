package analytics

// GroupBy selects the aggregation axis for weekly analysis.
type GroupBy string

const (
	GroupByFunction GroupBy = "function"
	GroupByCompany  GroupBy = "company"
	GroupByLocation GroupBy = "location"
)

func (g GroupBy) Valid() bool {
	switch g {
	case GroupByFunction, GroupByCompany, GroupByLocation:
		return true
	}
	return false
}

// BreakdownDepartment splits function-wise cells one level further.
const BreakdownDepartment = "department"

// WeeklyRow is one aggregation cell: a (week, group[, department]) bucket
// with its counters and derived percentages. Percentages are rounded to two
// decimals and are 0.0 whenever the denominator is zero.
type WeeklyRow struct {
	Week        string `json:"week"` // "YYYY-MM-Wnn", sortable
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	MonthName   string `json:"month_name"`
	WeekInMonth int    `json:"week_in_month"`
	Group       string `json:"group"`
	Department  string `json:"department,omitempty"`

	Members   int     `json:"members"`
	Present   int     `json:"present"`
	Late      int     `json:"late"`
	OnTime    int     `json:"on_time"`
	OnTimePct float64 `json:"on_time_pct"`

	ShiftHours    float64 `json:"shift_hours"`
	WorkHours     float64 `json:"work_hours"`
	Completed     int     `json:"completed"`
	TotalWorkDays int     `json:"total_work_days"`
	CompletionPct float64 `json:"completion_pct"`

	LostHours float64 `json:"lost_hours"`
	LostPct   float64 `json:"lost_pct"`
	// Lost mirrors LostHours for chart compatibility.
	Lost float64 `json:"lost"`

	LeaveMembers int     `json:"leave_members"`
	SL           int     `json:"sl"`
	CL           int     `json:"cl"`
	A            int     `json:"a"`
	SLPct        float64 `json:"sl_pct"`
	CLPct        float64 `json:"cl_pct"`
	APct         float64 `json:"a_pct"`
}

// CompanyMonthTotal is an unfiltered company-wide rollup for one month.
// Built only for the department breakdown so function-scoped users can still
// be shown accurate company totals on cost cards — deliberately NOT filtered
// by the caller's scope.
type CompanyMonthTotal struct {
	Month         string  `json:"month"` // "YYYY-MM"
	Company       string  `json:"company"`
	Members       int     `json:"members"`
	TotalWorkDays int     `json:"total_work_days"`
	ShiftHours    float64 `json:"shift_hours"`
	WorkHours     float64 `json:"work_hours"`
	LostHours     float64 `json:"lost_hours"`
}

// WeeklyResponse is the work_hour/weekly payload: scope-filtered detail rows
// plus, when the department breakdown ran, the unfiltered company rollups.
type WeeklyResponse struct {
	Data              []WeeklyRow         `json:"data"`
	CompanyTotalsFull []CompanyMonthTotal `json:"company_totals_full,omitempty"`
}

// ODGroupBy axes for on-duty analysis. Narrower than the weekly set: OD is
// reviewed per function or per person, never per location.
const (
	ODGroupByFunction = "function"
	ODGroupByEmployee = "employee"
)

// ODRow is one month's on-duty tally for a group.
type ODRow struct {
	Month   string `json:"month"` // "YYYY-MM"
	Group   string `json:"group"`
	Members int    `json:"members"`
	ODDays  int    `json:"od_days"`
}

// TeamsUserActivity is one licensed user's metrics from a Teams activity
// export, enriched with function and department from the roster when the
// user's principal name matches a roster email.
type TeamsUserActivity struct {
	FileID     int64  `json:"file_id"`
	Filename   string `json:"filename"`
	User       string `json:"user"`
	Function   string `json:"function"`
	Department string `json:"department"`

	TeamChat           int `json:"team_chat"`
	PrivateChat        int `json:"private_chat"`
	Calls              int `json:"calls"`
	MeetingsOrganized  int `json:"meetings_organized"`
	MeetingsAttended   int `json:"meetings_attended"`
	OneTimeOrganized   int `json:"one_time_organized"`
	OneTimeAttended    int `json:"one_time_attended"`
	RecurringOrganized int `json:"recurring_organized"`
	RecurringAttended  int `json:"recurring_attended"`
	PostMessages       int `json:"post_messages"`
}
