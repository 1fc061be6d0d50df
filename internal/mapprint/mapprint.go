// Package mapprint renders the adventure map as a printable PDF: every
// stage as a marker along a winding path, shaded by whether it is cleared,
// next up or still locked.
package mapprint

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/abhisek/mathquest/internal/stages"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	markerR   = 18.0
	pathStepX = 118.0
	pathStepY = 120.0
	perRow    = 4
	titleSize = 18
	labelSize = 7
)

// ErrNoStages is returned when there is nothing to draw.
var ErrNoStages = errors.New("no stages to draw")

// state of a stage relative to the unlocked one.
type state int

const (
	stateCleared state = iota
	stateNext
	stateLocked
)

func stateOf(i, unlocked int) state {
	switch {
	case i < unlocked:
		return stateCleared
	case i == unlocked:
		return stateNext
	}
	return stateLocked
}

// Generate returns the PDF bytes for the map. unlocked is the index of the
// next stage to play; stages before it are drawn as cleared.
func Generate(list []stages.Stage, unlocked int, subtitle string) ([]byte, error) {
	if len(list) == 0 {
		return nil, ErrNoStages
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Parchment and frame.
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")
	pdf.SetDrawColor(80, 50, 30)
	pdf.SetLineWidth(2)
	pdf.Rect(margin/2, margin/2, pageW-margin, pageH-margin, "D")
	pdf.SetLineWidth(1)

	pdf.SetTextColor(80, 50, 30)
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin, margin)
	pdf.CellFormat(pageW-2*margin, 20, "Map of Numeria", "", 0, "C", false, 0, "")
	if subtitle != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetXY(margin, margin+22)
		pdf.CellFormat(pageW-2*margin, 12, tr(subtitle), "", 0, "C", false, 0, "")
	}
	drawCompass(pdf, pageW-margin-30, margin+30)

	pos := layout(len(list))

	// Dashed trail between consecutive stages.
	pdf.SetDrawColor(180, 40, 40)
	pdf.SetLineWidth(2)
	pdf.SetDashPattern([]float64{8, 5}, 0)
	for i := 0; i+1 < len(pos); i++ {
		pdf.Line(pos[i][0], pos[i][1], pos[i+1][0], pos[i+1][1])
	}
	pdf.SetDashPattern([]float64{}, 0)
	pdf.SetLineWidth(1)

	world := ""
	for i, st := range list {
		x, y := pos[i][0], pos[i][1]
		if st.WorldName != world {
			world = st.WorldName
			pdf.SetFont("Helvetica", "BI", 8)
			pdf.SetTextColor(120, 80, 40)
			pdf.SetXY(x-pathStepX/2, y-markerR-16)
			pdf.CellFormat(pathStepX, 10, tr(strings.ToUpper(world)), "", 0, "C", false, 0, "")
		}
		drawMarker(pdf, x, y, i+1, stateOf(i, unlocked))

		pdf.SetFont("Helvetica", "B", labelSize)
		pdf.SetTextColor(40, 25, 15)
		pdf.SetXY(x-pathStepX/2+4, y+markerR+4)
		pdf.CellFormat(pathStepX-8, 9, tr(shortName(st.Name)), "", 0, "C", false, 0, "")
		if i == unlocked {
			pdf.SetFont("Helvetica", "I", labelSize)
			pdf.SetXY(x-pathStepX/2+4, y+markerR+13)
			pdf.CellFormat(pathStepX-8, 9, "You are here", "", 0, "C", false, 0, "")
		}
	}

	drawLegend(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render map: %w", err)
	}
	return buf.Bytes(), nil
}

// layout places n markers on a snake path, perRow to a row, reversing
// direction on odd rows.
func layout(n int) [][2]float64 {
	x0 := float64(margin) + pathStepX/2 + 20
	y0 := float64(margin) + 110
	pos := make([][2]float64, n)
	for i := range pos {
		row, col := i/perRow, i%perRow
		if row%2 == 1 {
			col = perRow - 1 - col
		}
		pos[i] = [2]float64{x0 + float64(col)*pathStepX, y0 + float64(row)*pathStepY}
	}
	return pos
}

// shortName drops a leading "Stage N: " and caps the length.
func shortName(name string) string {
	if _, rest, ok := strings.Cut(name, ": "); ok && strings.HasPrefix(name, "Stage ") {
		name = rest
	}
	if r := []rune(name); len(r) > 24 {
		name = string(r[:21]) + "..."
	}
	return name
}

func setFill(pdf *gofpdf.Fpdf, s state) {
	switch s {
	case stateCleared:
		pdf.SetFillColor(120, 170, 90)
	case stateNext:
		pdf.SetFillColor(235, 190, 70)
	default:
		pdf.SetFillColor(190, 180, 165)
	}
}

func drawMarker(pdf *gofpdf.Fpdf, x, y float64, n int, s state) {
	setFill(pdf, s)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.5)
	pdf.Circle(x, y, markerR, "FD")
	if s == stateNext {
		pdf.SetDrawColor(180, 40, 40)
		pdf.SetLineWidth(2)
		pdf.Circle(x, y, markerR+5, "D")
	}
	pdf.SetLineWidth(1)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(40, 25, 15)
	pdf.SetXY(x-markerR, y-6)
	label := fmt.Sprint(n)
	if s == stateLocked {
		label = "?"
	}
	pdf.CellFormat(markerR*2, 12, label, "", 0, "C", false, 0, "")
}

func drawCompass(pdf *gofpdf.Fpdf, cx, cy float64) {
	const rad = 16.0
	pdf.SetDrawColor(101, 67, 33)
	pdf.Circle(cx, cy, rad, "D")
	for i := range 4 {
		a := float64(i)*math.Pi/2 - math.Pi/2
		pdf.Line(cx, cy, cx+rad*math.Cos(a), cy+rad*math.Sin(a))
	}
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetXY(cx-4, cy-rad-9)
	pdf.CellFormat(8, 6, "N", "", 0, "C", false, 0, "")
	pdf.SetDrawColor(80, 50, 30)
}

func drawLegend(pdf *gofpdf.Fpdf) {
	y := float64(pageH - margin - 30)
	x := float64(margin + 10)
	items := []struct {
		s    state
		text string
	}{
		{stateCleared, "Cleared"},
		{stateNext, "Next battle"},
		{stateLocked, "Locked"},
	}
	for _, it := range items {
		setFill(pdf, it.s)
		pdf.SetDrawColor(0, 0, 0)
		pdf.Circle(x, y, 6, "FD")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(40, 25, 15)
		pdf.SetXY(x+10, y-4)
		pdf.CellFormat(70, 8, it.text, "", 0, "L", false, 0, "")
		x += 100
	}
}
