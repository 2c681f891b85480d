package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRenderGaugeShape checks the dial geometry: arc rows plus the centered
// score line, and clamping of out-of-range scores.
func TestRenderGaugeShape(t *testing.T) {
	out := renderGauge(35, 21)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6, "a 21-wide dial should render 5 arc rows plus the score line")
	assert.Contains(t, lines[len(lines)-1], "35", "score line should carry the score")

	assert.Contains(t, renderGauge(-10, 21), "0", "negative scores clamp to 0")
	assert.Contains(t, renderGauge(240, 21), "100", "oversized scores clamp to 100")
}

// TestRenderGaugeFillMonotonic checks that a higher score never fills fewer
// cells.
func TestRenderGaugeFillMonotonic(t *testing.T) {
	prev := -1
	for _, score := range []int{0, 25, 50, 75, 100} {
		filled := strings.Count(renderGauge(score, 21), SymbolGaugeFill)
		assert.GreaterOrEqual(t, filled, prev, "fill for score %d should not shrink", score)
		prev = filled
	}
	assert.Zero(t, strings.Count(renderGauge(0, 21), SymbolGaugeFill), "score 0 should fill nothing")
	assert.Zero(t, strings.Count(renderGauge(100, 21), SymbolGaugeEmpty), "score 100 should leave no track showing")
}

// TestRenderMeterProportions checks the strength bar fill arithmetic.
func TestRenderMeterProportions(t *testing.T) {
	full := renderMeter(100, 30, 0)
	assert.Equal(t, 30, strings.Count(full, SymbolMeterFill), "full meter should fill every cell")

	empty := renderMeter(0, 30, 0)
	assert.Zero(t, strings.Count(empty, SymbolMeterFill), "empty meter should fill nothing")
	assert.Equal(t, 30, strings.Count(empty, SymbolMeterEmpty), "empty meter should be all track")

	half := renderMeter(50, 30, 0)
	assert.Equal(t, 15, strings.Count(half, SymbolMeterFill), "half meter should fill half the cells")
}
