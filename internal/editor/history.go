package editor

import (
	"fmt"

	"github.com/example/iconcanvas/internal/history"
	"github.com/example/iconcanvas/internal/scene"
)

// mutate applies fn to id and records action when the node's attributes
// changed. Undo and redo restore the captured states; a subject that no
// longer exists makes them no-ops.
func (s *Session) mutate(action history.Action, id string, fn func(*scene.Node)) error {
	before, err := s.scene.Snapshot(id)
	if err != nil {
		return err
	}
	if err := s.scene.Update(id, fn); err != nil {
		return err
	}
	after, _ := s.scene.Snapshot(id)
	s.recordChange(action, before, after)
	return nil
}

func (s *Session) recordChange(action history.Action, before, after scene.State) {
	if before.Equal(after) {
		return
	}
	s.hist.Record(history.Command{
		Action:  action,
		Subject: before.ID,
		Undo:    func() { s.restore(before) },
		Redo:    func() { s.restore(after) },
	})
}

func (s *Session) restore(st scene.State) {
	if err := s.scene.Restore(st); err != nil {
		s.logf("restore %s: %v", st.ID, err)
	}
}

// recordInsert records the appearance of n at p. Undo removes it; redo
// puts the same node back where it was and selects it.
func (s *Session) recordInsert(action history.Action, n *scene.Node, p scene.Placement) {
	s.hist.Record(history.Command{
		Action:  action,
		Subject: n.ID,
		Undo:    func() { s.detach(n.ID) },
		Redo:    func() { s.attach(n, p) },
	})
}

// recordRemoval is the inverse of recordInsert.
func (s *Session) recordRemoval(action history.Action, n *scene.Node, p scene.Placement) {
	s.hist.Record(history.Command{
		Action:  action,
		Subject: n.ID,
		Undo:    func() { s.attach(n, p) },
		Redo:    func() { s.detach(n.ID) },
	})
}

func (s *Session) attach(n *scene.Node, p scene.Placement) {
	if s.scene.Contains(n.ID) {
		return
	}
	if err := s.scene.Insert(n, p); err != nil {
		s.logf("insert %s: %v", n.ID, err)
		return
	}
	s.selectID(n.ID)
}

func (s *Session) detach(id string) {
	if !s.scene.Contains(id) {
		return
	}
	if s.selected == id {
		s.Deselect()
	}
	if s.crop.Active() && s.crop.Session().Target == id {
		s.crop.Cancel()
	}
	if _, err := s.scene.Remove(id); err != nil {
		s.logf("remove %s: %v", id, err)
	}
}

// recordArrange records a z-order change of id from index from to to.
func (s *Session) recordArrange(id string, from, to int) {
	s.hist.Record(history.Command{
		Action:  history.Arrange,
		Subject: id,
		Undo:    func() { s.moveTo(id, from) },
		Redo:    func() { s.moveTo(id, to) },
	})
}

func (s *Session) moveTo(id string, index int) {
	if !s.scene.Contains(id) {
		return
	}
	if err := s.scene.MoveTo(id, index); err != nil {
		s.logf("arrange %s: %v", id, err)
	}
}

// Undo reverts the latest entry. It reports false when there is nothing
// to undo.
func (s *Session) Undo() bool {
	s.cancelGestures()
	c, ok := s.hist.Undo()
	if ok {
		s.logf("undo %s %s", c.Action, c.Subject)
	}
	return ok
}

// Redo reapplies the next entry.
func (s *Session) Redo() bool {
	s.cancelGestures()
	c, ok := s.hist.Redo()
	if ok {
		s.logf("redo %s %s", c.Action, c.Subject)
	}
	return ok
}

// cancelGestures abandons anything half done so history never
// interleaves with a live gesture. A node being dragged goes back to
// where the drag started.
func (s *Session) cancelGestures() {
	if s.tool != nil {
		s.CancelTool()
	}
	if s.crop.Active() {
		s.crop.Cancel()
	}
	if d := s.drag; d != nil && d.kind != gestureCrop {
		if err := s.scene.Restore(d.before); err != nil {
			s.logf("cancel drag %s: %v", d.id, err)
		}
	}
	s.drag = nil
}

// unlocked returns the selected node, or an error when there is none or
// it is locked.
func (s *Session) unlocked(op string) (*scene.Node, error) {
	n := s.Selected()
	if n == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSelection)
	}
	if n.Locked {
		return nil, fmt.Errorf("%s %s: %w", op, n.ID, ErrLocked)
	}
	return n, nil
}
