package allowance

import "github.com/frahmantamala/allowance-management/internal"

type IssueMonthlyDTO struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (dto *IssueMonthlyDTO) Validate() error {
	return ValidPeriod(dto.Month, dto.Year)
}

type AdjustBalanceDTO struct {
	DeltaCents int64  `json:"delta_cents"`
	Reason     string `json:"reason"`
}

func (dto *AdjustBalanceDTO) Validate() error {
	if dto.DeltaCents == 0 {
		return internal.NewValidationError("delta_cents must be non-zero", internal.ErrCodeInvalidAmount)
	}
	return nil
}

type AllowancesResponse struct {
	Allowances []*EmployeeAllowance `json:"allowances"`
}

// IssueResult reports what one issuance run did.
type IssueResult struct {
	Month   int     `json:"month"`
	Year    int     `json:"year"`
	Issued  int     `json:"issued"`
	Skipped int     `json:"skipped"`
	UserIDs []int64 `json:"user_ids,omitempty"`
}
