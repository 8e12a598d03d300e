package sim

// Trace records peripheral calls in order.
type Trace struct {
	calls []string
}

// Add appends a call name. A nil Trace ignores it.
func (t *Trace) Add(call string) {
	if t == nil {
		return
	}
	t.calls = append(t.calls, call)
}

// Calls returns the recorded calls.
func (t *Trace) Calls() []string {
	if t == nil {
		return nil
	}
	return t.calls
}

// Reset forgets all recorded calls.
func (t *Trace) Reset() {
	if t != nil {
		t.calls = t.calls[:0]
	}
}
