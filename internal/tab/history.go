package tab

import "time"

// MaxClosedHistory is the number of closed tabs kept for reopening.
// Oldest entries are evicted first.
const MaxClosedHistory = 10

// Closed is an undo-history record of a closed tab. Transient runtime
// fields (pid, state, exit code) are stripped so a reopened tab starts
// fresh.
type Closed struct {
	ID       string
	Name     string
	Cwd      string
	Index    int
	ClosedAt time.Time
}

// RecordClosed sanitizes a tab into a history record, stamping the close
// time and the tab's original position.
func RecordClosed(t *Tab, index int) Closed {
	return Closed{
		ID:       t.ID,
		Name:     t.Name,
		Cwd:      t.Cwd,
		Index:    index,
		ClosedAt: time.Now(),
	}
}

// History keeps the most recently closed tabs, capped at MaxClosedHistory.
type History struct {
	entries []Closed
}

// Push appends a record, evicting the oldest entry when full.
func (h *History) Push(c Closed) {
	h.entries = append(h.entries, c)
	if len(h.entries) > MaxClosedHistory {
		h.entries = h.entries[len(h.entries)-MaxClosedHistory:]
	}
}

// PopLast removes and returns the most recently closed record.
func (h *History) PopLast() (Closed, bool) {
	if len(h.entries) == 0 {
		return Closed{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

// Len returns the number of records currently held.
func (h *History) Len() int {
	return len(h.entries)
}
