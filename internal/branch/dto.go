package branch

import (
	"strings"

	"github.com/frahmantamala/allowance-management/internal"
)

// BranchDTO carries create and update payloads. A nil ID means create;
// a present ID means edit.
type BranchDTO struct {
	ID       *int64 `json:"id,omitempty"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (dto *BranchDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// Normalize trims whitespace the way the form fields do before submit.
func (dto *BranchDTO) Normalize() {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Location = strings.TrimSpace(dto.Location)
}

type BranchesResponse struct {
	Branches []*Branch `json:"branches"`
}
