package app

import "testing"

func TestSessions(t *testing.T) {
	s := NewSessions()
	c1, c2 := conn("c1"), conn("c2")
	cancelled := 0
	s.Bind(c1, "token-a", func() { cancelled++ })
	s.Bind(c2, "token-b", nil)

	if s.Count() != 2 {
		t.Fatalf("Count() = %d", s.Count())
	}

	s.Unbind("c1")
	if cancelled != 1 || s.Count() != 1 {
		t.Fatalf("unbind should cancel and forget, cancelled=%d count=%d", cancelled, s.Count())
	}

	if n := s.CloseAll(); n != 1 || !c2.closed {
		t.Fatalf("CloseAll closed %d, c2.closed=%v", n, c2.closed)
	}
}
