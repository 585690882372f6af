package dto

import "time"

type SummaryInput struct {
	// Since limits the report to tasks starting on or after it. Zero means
	// all tasks.
	Since time.Time
}

type SummaryRow struct {
	Name         string
	Count        int
	TotalMinutes int
	AvgEnergy    float64
	Rated        int
}

type ReindexOutput struct {
	Indexed int
}
