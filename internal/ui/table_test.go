package ui_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/g5becks/mdtoc/internal/toc"
	"github.com/g5becks/mdtoc/internal/ui"
)

func sampleHeadings() []toc.Heading {
	return []toc.Heading{
		{Level: 1, Text: "Overview", Anchor: "overview", Line: 1},
		{Level: 2, Text: "Getting Started", Anchor: "getting-started", Line: 12},
	}
}

func TestRenderHeadingsTable(t *testing.T) {
	var buf bytes.Buffer
	err := ui.RenderHeadingsTo(&buf, sampleHeadings(), ui.HeadingsOptions{})
	if err != nil {
		t.Fatalf("RenderHeadingsTo() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"LINE", "LEVEL", "HEADING", "ANCHOR", "Overview", "getting-started", "12"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHeadingsJSON(t *testing.T) {
	var buf bytes.Buffer
	err := ui.RenderHeadingsTo(&buf, sampleHeadings(), ui.HeadingsOptions{JSON: true})
	if err != nil {
		t.Fatalf("RenderHeadingsTo() error = %v", err)
	}

	var decoded []toc.Heading
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("decoded %d headings, want 2", len(decoded))
	}
	if decoded[1].Anchor != "getting-started" {
		t.Fatalf("decoded[1].Anchor = %q, want getting-started", decoded[1].Anchor)
	}
}
