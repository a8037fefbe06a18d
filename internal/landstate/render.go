package landstate

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/width"

	"github.com/blz111/qq-farm-bot/internal/domain"
)

// Lines renders the status projection of a snapshot: one summary line, then
// plot cells four per line. Remaining times are advanced by elapsed.
func Lines(snap *domain.FarmSnapshot, elapsed time.Duration) []string {
	if snap == nil {
		return nil
	}
	secs := int64(elapsed / time.Second)
	if secs < 0 {
		secs = 0
	}

	lines := make([]string, 0, 1+(len(snap.Plots)+PlotsPerLine-1)/PlotsPerLine)
	lines = append(lines, summary(snap, secs))

	var row []string
	for _, p := range snap.Plots {
		row = append(row, PadRight(cell(p, secs), CellWidth))
		if len(row) == PlotsPerLine {
			lines = append(lines, strings.TrimRight(strings.Join(row, " "), " "))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		lines = append(lines, strings.TrimRight(strings.Join(row, " "), " "))
	}
	return lines
}

func summary(snap *domain.FarmSnapshot, secs int64) string {
	c := snap.Counts
	s := fmt.Sprintf(SummaryFmt, c.Harvestable, c.Growing, c.Empty, c.Dead, c.NeedWater, c.NeedWeed, c.NeedBug)
	if snap.MinRemaining != nil {
		s += fmt.Sprintf(SummaryMinFmt, FormatSeconds(max(*snap.MinRemaining-secs, 0)))
	}
	return s
}

func cell(p domain.PlotRecord, secs int64) string {
	var body string
	switch p.Category {
	case domain.CategoryEmpty:
		body = LabelEmpty
	case domain.CategoryDead:
		body = p.Name + " " + LabelDead
	case domain.CategoryHarvestable:
		body = p.Name + " " + LabelReady
	default:
		body = p.Name + " " + growingStatus(p, secs)
	}
	if p.NeedsWater {
		body += MarkWater
	}
	if p.NeedsWeed {
		body += MarkWeed
	}
	if p.NeedsBug {
		body += MarkBug
	}
	return fmt.Sprintf(CellFmt, p.LandID, body)
}

func growingStatus(p domain.PlotRecord, secs int64) string {
	if !p.RemainingKnown {
		return LabelUnknown
	}
	left := p.Remaining - secs
	if left <= 0 {
		return LabelSoon
	}
	if p.TotalGrow <= 0 {
		return FormatSeconds(left)
	}
	pct := 100 * (p.TotalGrow - left) / p.TotalGrow
	pct = min(max(pct, 0), 99)
	return fmt.Sprintf("%d%% %s", pct, FormatSeconds(left))
}

// FormatSeconds renders a duration as 1h02m, 5m03s or 42s
func FormatSeconds(s int64) string {
	switch {
	case s >= 3600:
		return fmt.Sprintf("%dh%02dm", s/3600, (s%3600)/60)
	case s >= 60:
		return fmt.Sprintf("%dm%02ds", s/60, s%60)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// DisplayWidth counts terminal columns, two for East Asian wide and fullwidth runes
func DisplayWidth(s string) int {
	w := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}
	return w
}

// PadRight pads s with spaces to n display columns
func PadRight(s string, n int) string {
	if pad := n - DisplayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
