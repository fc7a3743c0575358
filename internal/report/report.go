package report

// Summary is the KPI block for one month: what was issued across all
// employees, what was eaten, and how much of it went over budget.
type Summary struct {
	Month           int     `json:"month"`
	Year            int     `json:"year"`
	IssuedCents     int64   `json:"issued_cents"`
	UsedCents       int64   `json:"used_cents"`
	OverCents       int64   `json:"over_cents"`
	EmployeeCount   int64   `json:"employee_count"`
	OverUsageCount  int64   `json:"over_usage_count"`
	UsagePercent    float64 `json:"usage_percent"`
	IssuedFormatted string  `json:"issued_formatted"`
	UsedFormatted   string  `json:"used_formatted"`
	OverFormatted   string  `json:"over_formatted"`
}

// OverUsageCase is one employee who spent beyond their allowance.
type OverUsageCase struct {
	UserID      int64   `json:"user_id" db:"user_id"`
	FullName    string  `json:"full_name" db:"full_name"`
	GroupName   string  `json:"group_name" db:"group_name"`
	IssuedCents int64   `json:"issued_cents" db:"issued_cents"`
	UsedCents   int64   `json:"used_cents" db:"used_cents"`
	OverCents   int64   `json:"over_cents" db:"over_cents"`
	BarWidth    float64 `json:"bar_width"`
}

// GroupOverUsage aggregates over-usage per allowance group.
type GroupOverUsage struct {
	GroupID     int64   `json:"group_id" db:"group_id"`
	GroupName   string  `json:"group_name" db:"group_name"`
	MemberCount int64   `json:"member_count" db:"member_count"`
	IssuedCents int64   `json:"issued_cents" db:"issued_cents"`
	UsedCents   int64   `json:"used_cents" db:"used_cents"`
	OverCents   int64   `json:"over_cents" db:"over_cents"`
	BarWidth    float64 `json:"bar_width"`
}

// TrendPoint is one month in the usage trend series, split by order
// type so the chart can render a self/guest bar pair per month.
type TrendPoint struct {
	Month           int   `json:"month" db:"month"`
	Year            int   `json:"year" db:"year"`
	SelfUsageCents  int64 `json:"self_usage_cents" db:"self_usage_cents"`
	GuestUsageCents int64 `json:"guest_usage_cents" db:"guest_usage_cents"`
	TotalCents      int64 `json:"total_cents" db:"total_cents"`
}

type OverUsageResponse struct {
	Month int              `json:"month"`
	Year  int              `json:"year"`
	Cases []*OverUsageCase `json:"cases"`
}

type GroupOverUsageResponse struct {
	Month  int               `json:"month"`
	Year   int               `json:"year"`
	Groups []*GroupOverUsage `json:"groups"`
}

type TrendResponse struct {
	Months int           `json:"months"`
	Points []*TrendPoint `json:"points"`
}
