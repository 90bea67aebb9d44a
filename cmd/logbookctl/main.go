// logbookctl is the thin CLI wrapper spec.md §1 leaves unrespecified: it
// reads one input document from standard input, runs a solve, and writes
// one output document to standard output.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/paiban/logbook/pkg/model"
	"github.com/paiban/logbook/pkg/scheduler/engine"
)

func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fail(fmt.Errorf("failed to read stdin: %w", err))
	}

	var in model.Input
	if err := json.Unmarshal(input, &in); err != nil {
		fail(fmt.Errorf("malformed input document: %w", err))
	}

	runID := uuid.New().String()
	out := engine.Solve(runID, &in)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fail(fmt.Errorf("failed to write output document: %w", err))
	}
	// Exit 0 whenever the output document was emitted, including
	// INFEASIBLE/TIME_LIMIT/ERROR statuses (spec.md §7): those are results,
	// not uncaught failures.
}

func fail(err error) {
	enc := json.NewEncoder(os.Stdout)
	enc.Encode(map[string]string{"error": err.Error()})
	os.Exit(1)
}
