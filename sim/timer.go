package sim

// Timer is a delay timer that only remembers its state.
type Timer struct {
	trace   *Trace
	period  uint32
	running bool
}

// NewTimer creates a stopped timer that records into trace (may be nil).
func NewTimer(trace *Trace) *Timer {
	return &Timer{trace: trace}
}

func (t *Timer) SetPeriod(period uint32) {
	t.trace.Add("timer.period")
	t.period = period
}

func (t *Timer) Start() {
	t.trace.Add("timer.start")
	t.running = true
}

func (t *Timer) Stop() {
	t.trace.Add("timer.stop")
	t.running = false
}

// Period returns the last programmed period.
func (t *Timer) Period() uint32 {
	return t.period
}

// Running reports whether the timer is started.
func (t *Timer) Running() bool {
	return t.running
}
