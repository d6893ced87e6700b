package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/g5becks/mdtoc/internal/update"
)

type styles struct {
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	dim    *color.Color
	bold   *color.Color
}

func newStyles() styles {
	return styles{
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		dim:    color.New(color.Faint),
		bold:   color.New(color.Bold),
	}
}

// UpdatePrinter renders update progress events to stderr with colored
// output.
type UpdatePrinter struct {
	w      io.Writer
	dryRun bool
	mu     sync.Mutex
	s      styles
}

// NewUpdatePrinter creates an UpdatePrinter that writes to stderr.
func NewUpdatePrinter(dryRun bool) *UpdatePrinter {
	return &UpdatePrinter{
		w:      os.Stderr,
		dryRun: dryRun,
		s:      newStyles(),
	}
}

// NewUpdatePrinterWithWriter creates an UpdatePrinter that writes to the
// given writer.
func NewUpdatePrinterWithWriter(w io.Writer, dryRun bool) *UpdatePrinter {
	return &UpdatePrinter{
		w:      w,
		dryRun: dryRun,
		s:      newStyles(),
	}
}

// HandleEvent is the callback wired into update.Options.OnEvent.
func (p *UpdatePrinter) HandleEvent(e update.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case update.EventFileStart:
		fmt.Fprintf(p.w, "%s updating %s...\n",
			p.s.dim.Sprint("⟳"),
			p.s.bold.Sprint(e.Path),
		)

	case update.EventFileDone:
		p.handleDone(e)
	}
}

func (p *UpdatePrinter) handleDone(e update.Event) {
	if e.Err != nil {
		fmt.Fprintf(p.w, "%s %s: %s\n",
			p.s.red.Sprint("✗"),
			p.s.bold.Sprint(e.Path),
			e.Err,
		)
		return
	}

	name := p.s.bold.Sprint(e.Path)

	if !e.Changed {
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.s.dim.Sprint("—"),
			name,
			p.s.dim.Sprint("(up to date)"),
		)
		return
	}

	detail := "(updated)"
	if p.dryRun {
		detail = "(would update)"
	}

	fmt.Fprintf(p.w, "%s %s %s\n",
		p.s.green.Sprint("✓"),
		name,
		p.s.dim.Sprint(detail),
	)
}

// PrintSummary renders a final summary line after an update run.
func (p *UpdatePrinter) PrintSummary(r *update.RunResult) {
	if r == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w)

	label := "update complete"
	if p.dryRun {
		label = p.s.yellow.Sprint("dry-run complete")
	}

	parts := fmt.Sprintf("%s: %d file(s), %d updated, %d up-to-date",
		label,
		r.Files,
		r.Updated,
		r.Unchanged,
	)

	if r.Errors > 0 {
		parts += fmt.Sprintf(", %s",
			p.s.red.Sprintf("%d failed", r.Errors),
		)
	}

	fmt.Fprintln(p.w, parts)

	if p.dryRun {
		fmt.Fprintln(p.w, p.s.dim.Sprint("no files were written"))
	}
}
