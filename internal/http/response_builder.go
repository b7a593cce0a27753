package http

import (
	"time"

	"finboard/internal/aggregate"
	"finboard/internal/core"
	"finboard/internal/services"
)

// Wire shapes for the JSON API. Amounts travel as decimal strings so no
// client ever sees a float; internal math stays in cents.

type monthlyBucketResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type categoryBucketResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Color string `json:"color"`
}

type summaryResponse struct {
	TotalIncome      string `json:"total_income"`
	TotalExpense     string `json:"total_expense"`
	TransactionCount int    `json:"transaction_count"`
	SpendingGoal     string `json:"spending_goal"`
}

type dashboardResponse struct {
	Monthly        []monthlyBucketResponse  `json:"monthly"`
	Categories     []categoryBucketResponse `json:"categories"`
	Summary        summaryResponse          `json:"summary"`
	SkippedRecords int                      `json:"skipped_records"`
	Version        uint64                   `json:"version"`
	FetchedAt      time.Time                `json:"fetched_at"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
}

func buildDashboardResponse(snap services.Snapshot) dashboardResponse {
	resp := dashboardResponse{
		// Empty slices, not null: a user with no history is a valid state.
		Monthly:    make([]monthlyBucketResponse, 0, len(snap.View.Monthly)),
		Categories: make([]categoryBucketResponse, 0, len(snap.View.Categories)),
		Summary: summaryResponse{
			TotalIncome:      core.FormatCents(snap.View.Summary.TotalIncome.Cents),
			TotalExpense:     core.FormatCents(snap.View.Summary.TotalExpense.Cents),
			TransactionCount: snap.View.Summary.TransactionCount,
			SpendingGoal:     core.FormatCents(snap.View.Summary.SpendingGoal.Cents),
		},
		SkippedRecords: snap.View.SkippedRecords,
		Version:        snap.Version,
		FetchedAt:      snap.FetchedAt,
	}
	for _, b := range snap.View.Monthly {
		resp.Monthly = append(resp.Monthly, monthlyBucketResponse{
			Month:   b.Month,
			Income:  core.FormatCents(b.Income.Cents),
			Expense: core.FormatCents(b.Expense.Cents),
		})
	}
	for _, c := range snap.View.Categories {
		resp.Categories = append(resp.Categories, categoryBucketResponse{
			Name:  c.Name,
			Value: core.FormatCents(c.Value.Cents),
			Color: c.Color,
		})
	}
	return resp
}

func buildTransactionList(rows []aggregate.Record) []transactionResponse {
	out := make([]transactionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, transactionResponse{
			ID:          row.ID,
			Description: row.Description,
			Date:        row.Date,
			Category:    row.Category,
			Amount:      row.Amount,
			Type:        row.Type,
		})
	}
	return out
}
