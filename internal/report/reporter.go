package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	plotHeight = 10
	plotWidth  = 80
)

// Reporter writes human-readable run output: periodic status lines, event
// lines and an end-of-run summary.
type Reporter struct {
	w     io.Writer
	style styles
}

func New(w io.Writer) *Reporter {
	return &Reporter{
		w:     w,
		style: newStyles(lipgloss.NewRenderer(w)),
	}
}

func (r *Reporter) Status(elapsed, temperature float64) {
	fmt.Fprintf(r.w, "Elapsed time: %s; temperature: %.2f\n",
		strconv.FormatFloat(elapsed, 'f', -1, 64), temperature)
}

func (r *Reporter) Event(msg string) {
	fmt.Fprintln(r.w, r.style.event.Render("* "+msg))
}

// OnHeatingChange lets the reporter observe a heater directly.
func (r *Reporter) OnHeatingChange(on bool, temperature float64, at time.Time) {
	if on {
		r.Event("Heat is ON")
	} else {
		r.Event("Heat is OFF")
	}
}

func (r *Reporter) Metrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintln(r.w, r.style.title.Render("metrics:"))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintf(r.w, "  %s %s\n",
			r.style.label.Render(name+":"),
			r.style.value.Render(strconv.FormatFloat(m[name], 'f', 4, 64)))
	}
}

func (r *Reporter) Plot(series []float64, caption string) {
	if len(series) == 0 {
		return
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(r.w, graph)
}
