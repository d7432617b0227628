package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTripPDF(t *testing.T) {
	data := TripPDF{
		Origin:      "Delhi",
		Destination: "Goa",
		StartDate:   "2025-01-10",
		EndDate:     "2025-01-15",
		Budget:      50000,
		Days: []DayPlan{
			{Day: 1, Title: "Arrival", Morning: "Check in", Afternoon: "Beach", Evening: "Dinner", EstimatedCost: 3000},
			{Day: 2, Title: "Old Goa", Morning: "Basilica", Afternoon: "Fort", Evening: "Night market", EstimatedCost: 2500},
		},
		Tips:            []string{"Carry cash"},
		BestAttractions: []string{"Baga Beach"},
		Breakdown:       SplitBudget(50000),
	}

	pdfBytes, err := GenerateTripPDF(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
