package dto

import (
	"github.com/ledgerly/backend/internal/application/usecase/analytics"
)

// SummaryResponse represents the headline report figures.
type SummaryResponse struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Balance      string `json:"balance"`
	Loading      bool   `json:"loading"`
}

// BreakdownSliceResponse is one row of the expense breakdown.
type BreakdownSliceResponse struct {
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
}

// BreakdownResponse represents the expense breakdown report.
type BreakdownResponse struct {
	Categories []BreakdownSliceResponse `json:"categories"`
	Loading    bool                     `json:"loading"`
}

// ToSummaryResponse converts a computed summary to its response DTO.
func ToSummaryResponse(summary analytics.Summary, loading bool) SummaryResponse {
	return SummaryResponse{
		TotalIncome:  summary.TotalIncome.String(),
		TotalExpense: summary.TotalExpense.String(),
		Balance:      summary.Balance.String(),
		Loading:      loading,
	}
}

// ToBreakdownResponse converts breakdown slices to their response DTO.
func ToBreakdownResponse(slices []analytics.CategorySlice, loading bool) BreakdownResponse {
	responses := make([]BreakdownSliceResponse, len(slices))
	for i, s := range slices {
		responses[i] = BreakdownSliceResponse{
			Name:       s.Name,
			Icon:       s.Icon,
			Color:      s.Color,
			Amount:     s.Amount.String(),
			Percentage: s.Percentage.String(),
		}
	}
	return BreakdownResponse{
		Categories: responses,
		Loading:    loading,
	}
}
