package docstring

// accumulator walks docstring lines and groups them into ordered segments.
// It is an explicit two-role state machine: the section currently being
// collected and the buffer of lines collected for it.
type accumulator struct {
	schema   Schema
	current  *SectionSpec
	buffer   []string
	segments []Segment
}

func newAccumulator(schema Schema) *accumulator {
	// Classifying an empty string seeds the implicit summary section when the
	// schema defines one, and nil otherwise.
	return &accumulator{schema: schema, current: schema.Classify("")}
}

// feed consumes one input line. A boundary occurs only when the line
// classifies to a section different from the current one; a line matching the
// current section again, or matching nothing, is buffered as segment body.
func (a *accumulator) feed(line string) {
	if sec := a.schema.Classify(line); sec != nil && sec != a.current {
		a.flush()
		a.current = sec
		return
	}
	a.buffer = append(a.buffer, line)
}

// flush closes the segment being collected. A segment with no body lines is
// still emitted so headers survive, but flushing with no section and no
// buffer is a no-op to avoid a phantom segment at the very start.
func (a *accumulator) flush() {
	if a.current == nil && len(a.buffer) == 0 {
		return
	}
	a.segments = append(a.segments, Segment{Section: a.current, Lines: a.buffer})
	a.buffer = nil
}

// Accumulate partitions lines into ordered segments using the schema.
func (s Schema) Accumulate(lines []string) []Segment {
	acc := newAccumulator(s)
	for _, line := range lines {
		acc.feed(line)
	}
	acc.flush()
	return acc.segments
}
