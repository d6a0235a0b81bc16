// Package history is a linear undo/redo timeline of reversible commands.
package history

// Action names the kind of mutation an entry reverses.
type Action string

const (
	Add       Action = "add"
	Remove    Action = "remove"
	Cut       Action = "cut"
	Transform Action = "transform"
	Arrange   Action = "arrange"
	Opacity   Action = "opacity"
	Crop      Action = "crop"
	Move      Action = "move"
	Text      Action = "text"
	Lock      Action = "lock"
	Favorite  Action = "favorite"
)

// Command is one recorded mutation. Undo and Redo close over the state
// from before and after it.
type Command struct {
	Action  Action
	Subject string
	Undo    func()
	Redo    func()
}

// History holds the timeline and a pointer to the last applied entry.
type History struct {
	entries  []Command
	pointer  int
	onChange func()
}

// New returns an empty history.
func New() *History {
	return &History{pointer: -1}
}

// OnChange registers a callback run after every Record, Undo, Redo or Reset.
func (h *History) OnChange(fn func()) {
	h.onChange = fn
}

func (h *History) changed() {
	if h.onChange != nil {
		h.onChange()
	}
}

// Record appends c, discarding anything that had been undone.
func (h *History) Record(c Command) {
	h.entries = append(h.entries[:h.pointer+1], c)
	h.pointer = len(h.entries) - 1
	h.changed()
}

// Undo reverses the entry at the pointer and steps back.
func (h *History) Undo() (Command, bool) {
	if h.pointer < 0 {
		return Command{}, false
	}
	c := h.entries[h.pointer]
	h.pointer--
	if c.Undo != nil {
		c.Undo()
	}
	h.changed()
	return c, true
}

// Redo reapplies the entry after the pointer and steps forward.
func (h *History) Redo() (Command, bool) {
	if h.pointer >= len(h.entries)-1 {
		return Command{}, false
	}
	h.pointer++
	c := h.entries[h.pointer]
	if c.Redo != nil {
		c.Redo()
	}
	h.changed()
	return c, true
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return h.pointer >= 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return h.pointer < len(h.entries)-1 }

// Len is the number of entries, undone ones included.
func (h *History) Len() int { return len(h.entries) }

// Pointer is the index of the last applied entry, -1 when none.
func (h *History) Pointer() int { return h.pointer }

// Entries lists the action of each entry in order.
func (h *History) Entries() []Action {
	out := make([]Action, len(h.entries))
	for i, c := range h.entries {
		out[i] = c.Action
	}
	return out
}

// Reset clears the timeline.
func (h *History) Reset() {
	h.entries = nil
	h.pointer = -1
	h.changed()
}
