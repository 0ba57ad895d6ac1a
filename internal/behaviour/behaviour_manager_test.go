package behaviour

import (
	"testing"
	"time"
)

type mockBehaviour struct {
	starts  int
	updates int
	last    Frame
}

func (m *mockBehaviour) Start()             { m.starts++ }
func (m *mockBehaviour) Update(frame Frame) { m.updates++; m.last = frame }

func TestManagerStartsOnce(t *testing.T) {
	m := NewManager()
	b := &mockBehaviour{}
	m.Add(b)

	m.UpdateAll(Frame{})
	m.UpdateAll(Frame{Elapsed: time.Second, Section: 2})

	if b.starts != 1 {
		t.Errorf("Expected Start() once, got %d", b.starts)
	}
	if b.updates != 2 {
		t.Errorf("Expected 2 updates, got %d", b.updates)
	}
	if b.last.Section != 2 || b.last.Elapsed != time.Second {
		t.Errorf("Update received stale frame %+v", b.last)
	}
}

func TestManagerRemoveKeepsOrder(t *testing.T) {
	m := NewManager()
	var order []string
	record := func(name string) *Func {
		f := Func(func(Frame) { order = append(order, name) })
		return &f
	}
	a, b, c := record("a"), record("b"), record("c")
	m.Add(a)
	m.Add(b)
	m.Add(c)

	m.Remove(b)
	m.UpdateAll(Frame{})

	if m.Len() != 2 {
		t.Fatalf("Expected 2 behaviours, got %d", m.Len())
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("Expected [a c], got %v", order)
	}
}

func TestManagerRemoveUnknownIsNoop(t *testing.T) {
	m := NewManager()
	m.Add(&mockBehaviour{})
	m.Remove(&mockBehaviour{})
	if m.Len() != 1 {
		t.Errorf("Expected 1 behaviour, got %d", m.Len())
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	b := &mockBehaviour{}
	m.Add(b)
	m.Clear()
	m.UpdateAll(Frame{})

	if m.Len() != 0 {
		t.Errorf("Expected empty manager, got %d", m.Len())
	}
	if b.updates != 0 {
		t.Error("Cleared behaviour was updated")
	}
}
