package render

import "sync"

// TableBuffer is a concurrency safe results table that controllers write to
// and renderers read from.
type TableBuffer struct {
	mu      sync.RWMutex
	columns []string
	rows    [][]string
}

// NewTableBuffer returns an empty table.
func NewTableBuffer() *TableBuffer {
	return &TableBuffer{}
}

// Reset drops all rows and sets the column headings.
func (t *TableBuffer) Reset(columns []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.columns = append([]string(nil), columns...)
	t.rows = nil
}

// Append adds one row.
func (t *TableBuffer) Append(row []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, append([]string(nil), row...))
}

// View copies the current contents.
func (t *TableBuffer) View() Table {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := Table{
		Columns: append([]string(nil), t.columns...),
		Rows:    make([][]string, len(t.rows)),
	}
	for i, row := range t.rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// StatusLine holds the outcome message of the most recent action.
type StatusLine struct {
	mu   sync.RWMutex
	text string
}

// NewStatusLine returns an empty status line.
func NewStatusLine() *StatusLine {
	return &StatusLine{}
}

func (s *StatusLine) Clear() {
	s.Flash("")
}

func (s *StatusLine) Flash(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = message
}

// Text returns the current message.
func (s *StatusLine) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}
