package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type TripPDF struct {
	Origin          string
	Destination     string
	StartDate       string
	EndDate         string
	Budget          float64
	Days            []DayPlan
	Tips            []string
	BestAttractions []string
	Breakdown       BudgetBreakdown
}

// GenerateTripPDF renders a trip's itinerary into a downloadable PDF.
func GenerateTripPDF(data TripPDF) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripWeaver", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "AI-Powered Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	text := func(value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, value, "", "L", false)
	}

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Route", fmt.Sprintf("%s to %s", data.Origin, data.Destination))
	row("Start", fmtDateReadable(data.StartDate))
	row("End", fmtDateReadable(data.EndDate))
	row("Days planned", fmt.Sprintf("%d", len(data.Days)))
	row("Total budget", fmt.Sprintf("Rs %.0f", data.Budget))
	pdf.Ln(4)

	// ── Budget Breakdown ──────────────────────────────────────
	sectionHeader("Budget Breakdown")
	row("Transport (40%)", fmt.Sprintf("Rs %.0f", data.Breakdown.Transport))
	row("Stay (35%)", fmt.Sprintf("Rs %.0f", data.Breakdown.Stay))
	row("Food (15%)", fmt.Sprintf("Rs %.0f", data.Breakdown.Food))
	row("Activities (10%)", fmt.Sprintf("Rs %.0f", data.Breakdown.Activities))

	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("Rs %.0f", data.Budget), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// ── Day-by-day Plan ───────────────────────────────────────
	for _, day := range data.Days {
		sectionHeader(fmt.Sprintf("Day %d - %s", day.Day, day.Title))
		row("Morning", "")
		text(day.Morning)
		row("Afternoon", "")
		text(day.Afternoon)
		row("Evening", "")
		text(day.Evening)
		row("Estimated cost", fmt.Sprintf("Rs %.0f", day.EstimatedCost))
		pdf.Ln(3)
	}

	// ── Tips ──────────────────────────────────────────────────
	if len(data.Tips) > 0 {
		sectionHeader("Travel Tips")
		for _, tip := range data.Tips {
			text("- " + tip)
		}
		pdf.Ln(3)
	}

	// ── Attractions ───────────────────────────────────────────
	if len(data.BestAttractions) > 0 {
		sectionHeader("Best Attractions")
		for _, a := range data.BestAttractions {
			text("- " + a)
		}
		pdf.Ln(3)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by TripWeaver Travel Planner · Not a booking confirmation · Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}
