// Package statusbar renders the farm status block to a terminal writer.
package statusbar

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Status is a partial update. Nil fields leave the current value untouched.
type Status struct {
	FarmLines    []string
	BestSeedLine *string
}

// Bar holds the last rendered state and redraws only when it changes
type Bar struct {
	mu       sync.Mutex
	out      io.Writer
	enabled  bool
	farm     []string
	bestSeed string
	renders  int

	header lipgloss.Style
	body   lipgloss.Style
	muted  lipgloss.Style
}

// New creates a Bar writing to out. A disabled Bar tracks state but never writes.
func New(out io.Writer, enabled bool) *Bar {
	return &Bar{
		out:     out,
		enabled: enabled,
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("28")),
		body:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	}
}

// Update applies the non-nil fields of s and re-renders if anything changed
func (b *Bar) Update(s Status) {
	b.mu.Lock()
	defer b.mu.Unlock()

	changed := false
	if s.FarmLines != nil && !slices.Equal(s.FarmLines, b.farm) {
		b.farm = slices.Clone(s.FarmLines)
		changed = true
	}
	if s.BestSeedLine != nil && *s.BestSeedLine != b.bestSeed {
		b.bestSeed = *s.BestSeedLine
		changed = true
	}
	if !changed {
		return
	}

	b.renders++
	if b.enabled && b.out != nil {
		_, _ = fmt.Fprintln(b.out, b.render())
	}
}

// Lines returns a copy of the current farm lines and best-seed line
func (b *Bar) Lines() (farm []string, bestSeed string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.farm), b.bestSeed
}

// Renders counts the redraws triggered so far
func (b *Bar) Renders() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.renders
}

func (b *Bar) render() string {
	var sb strings.Builder
	sb.WriteString(b.header.Render(" farm "))
	sb.WriteByte('\n')
	for i, line := range b.farm {
		if i == 0 {
			sb.WriteString(b.body.Bold(true).Render(line))
		} else {
			sb.WriteString(b.body.Render(line))
		}
		sb.WriteByte('\n')
	}
	if b.bestSeed != "" {
		sb.WriteString(b.muted.Render(b.bestSeed))
	}
	return strings.TrimRight(sb.String(), "\n")
}
