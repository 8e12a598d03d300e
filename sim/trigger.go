package sim

// Trigger is a bootloader trigger input. Enter returns, unlike hardware.
type Trigger struct {
	Armed   bool
	entered int
}

func (t *Trigger) PollTrigger() bool {
	return t.Armed
}

func (t *Trigger) Enter() {
	t.entered++
}

// Entered returns how often Enter was called.
func (t *Trigger) Entered() int {
	return t.entered
}

// Display keeps the last text shown on each row.
type Display struct {
	Rows    [2]string
	updates int
}

func (d *Display) ShowLine(row uint8, text string) {
	if int(row) < len(d.Rows) {
		d.Rows[row] = text
		d.updates++
	}
}

// Updates returns the number of row writes.
func (d *Display) Updates() int {
	return d.updates
}
