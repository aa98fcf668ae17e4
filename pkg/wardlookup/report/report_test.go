package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ukaji3/wardlookup/pkg/wardlookup"
	"github.com/ukaji3/wardlookup/pkg/wardlookup/logging"
)

func TestRenderSummary(t *testing.T) {
	summary := &wardlookup.Summary{
		Total:     1500,
		Blank:     2,
		Succeeded: 1490,
		Countries: map[string]int{"England": 1200, "Wales": 140, "Scotland": 150},
	}

	// Header and footer cells are upper-cased by the table style.
	out := strings.ToLower(RenderSummary(summary))
	for _, want := range []string{"country", "england", "1,200", "80.0%", "not found", "blank", "1490/1500 matched"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
	if strings.Index(out, "scotland") > strings.Index(out, "wales") {
		t.Errorf("expected countries ordered by count:\n%s", out)
	}
}

func TestRenderSummaryNil(t *testing.T) {
	if out := RenderSummary(nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	summary := &wardlookup.Summary{
		OutputPath: "out.xlsx",
		Total:      3,
		Succeeded:  1,
		Blank:      1,
		Countries:  map[string]int{"England": 1},
		Elapsed:    1234 * time.Millisecond,
	}
	if err := WriteSummary(&buf, summary); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "Wrote 3 rows to out.xlsx in 1.23s") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestProgressLogsWhenNotTerminal(t *testing.T) {
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	var out bytes.Buffer
	progress := NewProgress(&out, logger, true)
	progress.Update(1, 3, 100)
	progress.Update(3, 3, 50)
	progress.Finish()

	if out.Len() != 0 {
		t.Errorf("expected no bar output on a non-terminal, got %q", out.String())
	}
	text := logs.String()
	if !strings.Contains(text, "processing batch batch=1/3 postcodes=100") {
		t.Errorf("missing first batch line:\n%s", text)
	}
	if !strings.Contains(text, "batch=3/3 postcodes=50") {
		t.Errorf("missing last batch line:\n%s", text)
	}
}
