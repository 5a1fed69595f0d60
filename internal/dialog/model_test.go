package dialog

import (
	"testing"

	"github.com/Spok95/catalog-bot/internal/domain/catalog"
)

func TestStack(t *testing.T) {
	s := NewSession(1)
	if _, ok := s.Top(); ok {
		t.Fatal("new session must have an empty stack")
	}
	s.Push(Frame{CategoryID: 1, Name: "a"})
	s.Push(Frame{CategoryID: 2, Name: "b"})

	if top, _ := s.Top(); top.CategoryID != 2 {
		t.Errorf("Top = %d, want 2", top.CategoryID)
	}
	if f, _ := s.Pop(); f.CategoryID != 2 {
		t.Errorf("Pop = %d, want 2", f.CategoryID)
	}
	if f, _ := s.Pop(); f.CategoryID != 1 {
		t.Errorf("Pop = %d, want 1", f.CategoryID)
	}
	if _, ok := s.Pop(); ok {
		t.Error("Pop on empty stack must report false")
	}
}

func TestClearKeepsUser(t *testing.T) {
	s := NewSession(7)
	s.State = StateAwaitPhone
	s.BrowseType = catalog.TypeService
	s.Push(Frame{CategoryID: 3})
	s.Item = &ItemRef{Type: catalog.TypeService, ID: 9}
	s.Draft.Name = "Ali"

	s.Clear()
	if s.UserID != 7 || s.State != StateIdle {
		t.Fatalf("Clear() = %+v", s)
	}
	if len(s.Stack) != 0 || s.Item != nil || s.Draft != (Draft{}) || s.BrowseType != "" {
		t.Errorf("Clear() left data behind: %+v", s)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := NewSession(1)
	s.Push(Frame{CategoryID: 1})
	s.Item = &ItemRef{ID: 5}

	c := s.Clone()
	c.Stack[0].CategoryID = 100
	c.Item.ID = 500

	if s.Stack[0].CategoryID != 1 || s.Item.ID != 5 {
		t.Errorf("mutating clone changed original: %+v", s)
	}
}

func TestInInquiry(t *testing.T) {
	for _, st := range []State{StateAwaitName, StateAwaitPhone, StateAwaitDescription, StateAwaitConfirm} {
		if !st.InInquiry() {
			t.Errorf("%s.InInquiry() = false", st)
		}
	}
	for _, st := range []State{StateIdle, StateBrowsing, StateViewingItem} {
		if st.InInquiry() {
			t.Errorf("%s.InInquiry() = true", st)
		}
	}
}
