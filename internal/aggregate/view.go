package aggregate

import "finboard/internal/core"

// View is the assembled dashboard snapshot handed to the presentation layer:
// the three aggregator outputs under the field names the widgets expect, plus
// the count of rows excluded during normalization. It is never mutated after
// assembly.
type View struct {
	Monthly        []MonthlyBucket
	Categories     []CategoryBucket
	Summary        SummaryTotals
	SkippedRecords int
}

// Assemble recombines the aggregator outputs into one view. Pure structural
// reshaping: the orderings established by MonthlySeries and CategoryBreakdown
// pass through untouched.
func Assemble(monthly []MonthlyBucket, categories []CategoryBucket, summary SummaryTotals, skipped int) View {
	return View{
		Monthly:        monthly,
		Categories:     categories,
		Summary:        summary,
		SkippedRecords: skipped,
	}
}

// Build runs the whole pipeline over one fetched batch: normalize, then the
// three independent aggregators, then assembly.
func Build(rows []Record, goal core.Money) View {
	txs, skipped := Normalize(rows)
	return Assemble(
		MonthlySeries(txs),
		CategoryBreakdown(txs),
		Summarize(txs, goal),
		skipped,
	)
}
