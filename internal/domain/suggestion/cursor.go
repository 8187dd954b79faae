// Package suggestion holds the keyboard selection state over a list of query
// suggestions.
package suggestion

// Cursor tracks the highlighted suggestion. Position -1 means nothing is
// selected. Moves clamp at both ends and never wrap.
type Cursor struct {
	items []string
	pos   int
}

// NewCursor opens a cursor over items with no selection.
func NewCursor(items []string) *Cursor {
	return &Cursor{items: append([]string(nil), items...), pos: -1}
}

// Items returns the visible suggestions (empty once accepted or cancelled).
func (c *Cursor) Items() []string { return append([]string(nil), c.items...) }

// Position returns the selected index, or -1.
func (c *Cursor) Position() int { return c.pos }

// Open reports whether the suggestion list is still shown.
func (c *Cursor) Open() bool { return len(c.items) > 0 }

// Down moves the selection one item down, stopping at the last item.
func (c *Cursor) Down() {
	if c.pos < len(c.items)-1 {
		c.pos++
	}
}

// Up moves the selection one item up, stopping at -1.
func (c *Cursor) Up() {
	if c.pos > -1 {
		c.pos--
	}
}

// Accept returns the selected suggestion and closes the list. With no
// selection it reports false and leaves the list open.
func (c *Cursor) Accept() (string, bool) {
	if c.pos < 0 || c.pos >= len(c.items) {
		return "", false
	}
	chosen := c.items[c.pos]
	c.close()
	return chosen, true
}

// Cancel closes the list without choosing anything.
func (c *Cursor) Cancel() { c.close() }

func (c *Cursor) close() {
	c.items = nil
	c.pos = -1
}
