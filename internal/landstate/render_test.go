package landstate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 5, DisplayWidth("hello"))
	assert.Equal(t, 6, DisplayWidth("白萝卜"))
	assert.Equal(t, 8, DisplayWidth("a白萝卜b"))
	assert.Equal(t, 8, DisplayWidth(PadRight("土豆", 8)))
	assert.Equal(t, "toolong", PadRight("toolong", 3))
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "42s", FormatSeconds(42))
	assert.Equal(t, "5m03s", FormatSeconds(303))
	assert.Equal(t, "1h02m", FormatSeconds(3720))
}

func TestLines(t *testing.T) {
	minRemaining := int64(300)
	snap := &domain.FarmSnapshot{
		Counts:       domain.CategoryCounts{Growing: 4, Empty: 1},
		MinRemaining: &minRemaining,
		Plots: []domain.PlotRecord{
			{LandID: 1, Category: domain.CategoryGrowing, Name: "土豆", TotalGrow: 600, Remaining: 300, RemainingKnown: true, NeedsWater: true},
			{LandID: 2, Category: domain.CategoryGrowing, Name: "土豆", TotalGrow: 600, Remaining: 30, RemainingKnown: true},
			{LandID: 3, Category: domain.CategoryGrowing, Name: "玉米"},
			{LandID: 4, Category: domain.CategoryHarvestable, Name: "玉米"},
			{LandID: 5, Category: domain.CategoryEmpty},
		},
	}

	lines := Lines(snap, 60*time.Second)

	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "next 4m00s")
	assert.Contains(t, lines[1], "[01] 土豆 60% 4m00s~")
	assert.Contains(t, lines[1], "[02] 土豆 "+LabelSoon)
	assert.Contains(t, lines[1], "[03] 玉米 "+LabelUnknown)
	assert.Contains(t, lines[1], "[04] 玉米 "+LabelReady)
	assert.Equal(t, "[05] "+LabelEmpty, lines[2])

	cells := strings.Split(lines[1], "[")
	assert.Len(t, cells, 5)
}

func TestLines_NilSnapshot(t *testing.T) {
	assert.Nil(t, Lines(nil, time.Second))
}
