package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cyberintel/cyberintel/panel"
)

// Gauge fill keeps the alarm color at every score. The dashboard gauge reads
// as a threat dial, not a health bar, so a low score must not render green.
var (
	gaugeFillStyle  = lipgloss.NewStyle().Foreground(ErrorColor)
	gaugeTrackStyle = lipgloss.NewStyle().Foreground(InactiveBorderColor)
)

// renderGauge draws a half-circle dial filled clockwise from the left edge in
// proportion to score (0..100), with the numeric score centered beneath the
// arc. width is the full diameter in cells and is forced odd so the dial has
// a true center column.
func renderGauge(score int, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if width < 11 {
		width = 11
	}
	if width%2 == 0 {
		width++
	}

	rx := float64(width-1) / 2
	ry := rx / 2
	rows := int(ry)
	fillFraction := float64(score) / 100

	var s strings.Builder
	for row := rows; row >= 1; row-- {
		y := float64(row)
		for col := 0; col < width; col++ {
			x := float64(col) - rx

			// Arc ring: inside the outer ellipse, outside the inner one.
			outer := (x*x)/(rx*rx) + (y*y)/(ry*ry)
			inner := (x*x)/(rx*rx*0.3) + (y*y)/(ry*ry*0.3)
			if outer > 1 || inner <= 1 {
				s.WriteString(" ")
				continue
			}

			// Sweep position: 0 at the left end of the arc, 1 at the right.
			sweep := (math.Pi - math.Atan2(y, x)) / math.Pi
			if sweep <= fillFraction {
				s.WriteString(gaugeFillStyle.Render(SymbolGaugeFill))
			} else {
				s.WriteString(gaugeTrackStyle.Render(SymbolGaugeEmpty))
			}
		}
		s.WriteString("\n")
	}

	label := fmt.Sprintf("%d", score)
	pad := (width - lipgloss.Width(label)) / 2
	if pad < 0 {
		pad = 0
	}
	s.WriteString(strings.Repeat(" ", pad))
	s.WriteString(ErrorTextStyle.Render(label))
	return s.String()
}

// renderMeter draws a horizontal strength bar filled in proportion to score
// (0..100), colored by the score band.
func renderMeter(score int, width int, class panel.ColorClass) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if width < 4 {
		width = 4
	}

	filled := score * width / 100
	fill := colorClassStyle(class)
	var s strings.Builder
	s.WriteString(fill.Render(strings.Repeat(SymbolMeterFill, filled)))
	s.WriteString(gaugeTrackStyle.Render(strings.Repeat(SymbolMeterEmpty, width-filled)))
	return s.String()
}
