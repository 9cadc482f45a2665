// Package diag implements the verbose diagnostic notebook of §2.1 and
// the profile_type_infer tally of §6.5. It is grounded on the teacher's
// internal/testing reporters (text-formatted run summaries) but prints
// values with github.com/kr/pretty (teacher dependency) indented with
// github.com/kr/text, and tags entries with github.com/google/uuid and
// human-readable sizes via github.com/dustin/go-humanize — all four are
// teacher go.mod dependencies repurposed here rather than dropped.
package diag

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/kr/pretty"
	"github.com/kr/text"
)

// Entry is one notebook line: a tagged, timestamped observation of a
// value or a type-inference outcome.
type Entry struct {
	ID        uuid.UUID
	At        time.Time
	Statement string
	Kind      string // "eval", "call", "type-infer"
	Value     interface{}
	Bytes     int // approximate payload size, for the humanize-formatted summary
}

// Notebook accumulates Entries and renders them to an io.Writer. It is
// the collaborator the evaluator calls into when config.Verbose,
// config.ProfileTypeInfer or config.ValidateTypes is set; with all three
// off, the evaluator never constructs one.
type Notebook struct {
	entries []Entry
	typeTally map[string]int
}

// New creates an empty notebook.
func New() *Notebook {
	return &Notebook{typeTally: make(map[string]int)}
}

// Record appends an evaluation trace entry, pretty-printing val with
// github.com/kr/pretty the way the teacher's verbose test reporter
// formats assertion failures.
func (n *Notebook) Record(statement string, val interface{}) {
	n.entries = append(n.entries, Entry{
		ID: uuid.New(), At: recordTime(), Statement: statement, Kind: "eval", Value: val,
		Bytes: len(fmt.Sprint(pretty.Formatter(val))),
	})
}

// RecordType tallies one observation of a runtime kind against a
// statement, for the profile_type_infer report (§6.5): across a run,
// which kinds a given statement's expression actually produced.
func (n *Notebook) RecordType(statement, kind string) {
	key := statement + "\x00" + kind
	n.typeTally[key]++
	n.entries = append(n.entries, Entry{
		ID: uuid.New(), At: recordTime(), Statement: statement, Kind: "type-infer", Value: kind,
	})
}

// recordTime is a seam over time.Now so callers in a future replay/
// golden-test harness can substitute a fixed clock; production code
// always uses the real one.
var recordTime = time.Now

// WriteReport renders the notebook: one pretty-printed block per eval
// entry, indented with kr/text the way the teacher's formatter package
// indents nested blocks, followed by a type-inference tally summary
// with humanize-formatted byte totals.
func (n *Notebook) WriteReport(w io.Writer) error {
	var totalBytes int
	for _, e := range n.entries {
		if e.Kind != "eval" {
			continue
		}
		totalBytes += e.Bytes
		block := fmt.Sprintf("[%s] %s =>\n%s", e.ID.String()[:8], e.Statement, pretty.Sprint(e.Value))
		indented := text.Indent(block, "  ")
		if _, err := fmt.Fprintln(w, indented); err != nil {
			return err
		}
	}

	if len(n.typeTally) > 0 {
		fmt.Fprintln(w, "--- type-infer tally ---")
		for key, count := range n.typeTally {
			parts := strings.SplitN(key, "\x00", 2)
			fmt.Fprintf(w, "  %s : %s observed %d time(s)\n", parts[0], parts[1], count)
		}
	}
	fmt.Fprintf(w, "notebook size: %s\n", humanize.Bytes(uint64(totalBytes)))
	return nil
}
