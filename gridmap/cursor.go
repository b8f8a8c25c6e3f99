package gridmap

// Cursor is an explicit loop counter: Current runs from its start to Bound
// in Step increments.
type Cursor struct {
	Current int `yaml:"current" json:"current"`
	Bound   int `yaml:"bound" json:"bound"`
	Step    int `yaml:"step" json:"step"`
}

func newCursor(bound int) Cursor {
	return Cursor{Bound: bound, Step: 1}
}

// Done reports whether the cursor reached its bound.
func (c Cursor) Done() bool {
	return c.Current >= c.Bound
}

func (c *Cursor) Advance() {
	c.Current += c.Step
}

// Reset rewinds to zero, keeping bound and step.
func (c *Cursor) Reset() {
	c.Current = 0
}

func (c Cursor) remaining() int {
	if c.Done() || c.Step <= 0 {
		return 0
	}
	return (c.Bound - c.Current + c.Step - 1) / c.Step
}
