package postgres

import (
	"database/sql"

	"github.com/frahmantamala/allowance-management/internal/report"
	"github.com/jmoiron/sqlx"
)

// ReportRepository runs the aggregate queries directly against SQL;
// the report shapes never map onto gorm models.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type summaryRow struct {
	IssuedCents    int64 `db:"issued_cents"`
	UsedCents      int64 `db:"used_cents"`
	OverCents      int64 `db:"over_cents"`
	EmployeeCount  int64 `db:"employee_count"`
	OverUsageCount int64 `db:"over_usage_count"`
}

const summaryQuery = `
SELECT
	COALESCE(SUM(issued_cents), 0)                                          AS issued_cents,
	COALESCE(SUM(issued_cents - balance_cents), 0)                          AS used_cents,
	COALESCE(SUM(CASE WHEN balance_cents < 0 THEN -balance_cents ELSE 0 END), 0) AS over_cents,
	COUNT(*)                                                                AS employee_count,
	COUNT(CASE WHEN balance_cents < 0 THEN 1 END)                           AS over_usage_count
FROM employee_allowances
WHERE month = $1 AND year = $2`

func (r *ReportRepository) Summary(month, year int) (*report.Summary, error) {
	var row summaryRow
	if err := r.db.Get(&row, summaryQuery, month, year); err != nil {
		if err == sql.ErrNoRows {
			return &report.Summary{Month: month, Year: year}, nil
		}
		return nil, err
	}

	return &report.Summary{
		Month:          month,
		Year:           year,
		IssuedCents:    row.IssuedCents,
		UsedCents:      row.UsedCents,
		OverCents:      row.OverCents,
		EmployeeCount:  row.EmployeeCount,
		OverUsageCount: row.OverUsageCount,
	}, nil
}

const overUsageQuery = `
SELECT
	u.id                                AS user_id,
	u.full_name                         AS full_name,
	COALESCE(g.name, '')                AS group_name,
	a.issued_cents                      AS issued_cents,
	a.issued_cents - a.balance_cents    AS used_cents,
	-a.balance_cents                    AS over_cents
FROM employee_allowances a
JOIN users u ON u.id = a.user_id
LEFT JOIN allowance_groups g ON g.id = a.group_id
WHERE a.month = $1 AND a.year = $2 AND a.balance_cents < 0
ORDER BY over_cents DESC`

func (r *ReportRepository) OverUsageCases(month, year int) ([]*report.OverUsageCase, error) {
	var cases []*report.OverUsageCase
	if err := r.db.Select(&cases, overUsageQuery, month, year); err != nil {
		return nil, err
	}
	return cases, nil
}

const groupOverUsageQuery = `
SELECT
	g.id                                                                     AS group_id,
	g.name                                                                   AS group_name,
	COUNT(a.id)                                                              AS member_count,
	COALESCE(SUM(a.issued_cents), 0)                                         AS issued_cents,
	COALESCE(SUM(a.issued_cents - a.balance_cents), 0)                       AS used_cents,
	COALESCE(SUM(CASE WHEN a.balance_cents < 0 THEN -a.balance_cents ELSE 0 END), 0) AS over_cents
FROM allowance_groups g
LEFT JOIN employee_allowances a ON a.group_id = g.id AND a.month = $1 AND a.year = $2
GROUP BY g.id, g.name
ORDER BY over_cents DESC`

func (r *ReportRepository) GroupOverUsage(month, year int) ([]*report.GroupOverUsage, error) {
	var groups []*report.GroupOverUsage
	if err := r.db.Select(&groups, groupOverUsageQuery, month, year); err != nil {
		return nil, err
	}
	return groups, nil
}

const trendQuery = `
SELECT
	EXTRACT(YEAR FROM ordered_at)::int                                       AS year,
	EXTRACT(MONTH FROM ordered_at)::int                                      AS month,
	COALESCE(SUM(CASE WHEN order_type = 'SELF' THEN total_cents ELSE 0 END), 0)  AS self_usage_cents,
	COALESCE(SUM(CASE WHEN order_type = 'GUEST' THEN total_cents ELSE 0 END), 0) AS guest_usage_cents,
	COALESCE(SUM(total_cents), 0)                                            AS total_cents
FROM orders
WHERE (EXTRACT(YEAR FROM ordered_at)::int * 12 + EXTRACT(MONTH FROM ordered_at)::int) > ($2 * 12 + $1) - $3
  AND (EXTRACT(YEAR FROM ordered_at)::int * 12 + EXTRACT(MONTH FROM ordered_at)::int) <= ($2 * 12 + $1)
GROUP BY year, month
ORDER BY year ASC, month ASC`

// UsageTrend aggregates order spend per month for the last `months`
// months ending at month/year, oldest first, split by order type.
func (r *ReportRepository) UsageTrend(month, year, months int) ([]*report.TrendPoint, error) {
	var points []*report.TrendPoint
	if err := r.db.Select(&points, trendQuery, month, year, months); err != nil {
		return nil, err
	}
	return points, nil
}
