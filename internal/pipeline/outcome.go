package pipeline

// Outcome is the terminal state of one input row. Exactly one Outcome exists
// per row; it is never mutated after creation.
type Outcome struct {
	Label string
	Line  int
	Path  string // final file path, set on success
	Err   error  // set on failure
}

// Failed reports whether the row failed at any stage.
func (o Outcome) Failed() bool { return o.Err != nil }

// Reason returns the failure text, empty for successes.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// FileResult aggregates the outcomes of one input file.
type FileResult struct {
	File     string
	Outcomes []Outcome
	Err      error // fatal for this file, e.g. unreadable path
}

// Succeeded counts rows that produced an output file.
func (f FileResult) Succeeded() int {
	n := 0
	for _, o := range f.Outcomes {
		if !o.Failed() {
			n++
		}
	}
	return n
}

// Failed counts rows that ended in a row-scoped failure.
func (f FileResult) Failed() int {
	return len(f.Outcomes) - f.Succeeded()
}
