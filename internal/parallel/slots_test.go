package parallel

import "testing"

func TestSlotSet_MarkOnce(t *testing.T) {
	s := newSlotSet(10)

	if !s.mark(3) {
		t.Fatal("first mark(3) = false, want true")
	}
	if s.mark(3) {
		t.Error("second mark(3) = true, want false")
	}
	if got := s.count(); got != 1 {
		t.Errorf("count() = %d, want 1", got)
	}
	if !s.mark(4) {
		t.Error("mark(4) = false, want true")
	}
}

func TestSlotSet_CountAcrossWords(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"single", 1},
		{"sub-word", 63},
		{"exact word", 64},
		{"two words", 65},
		{"many words", 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSlotSet(tt.n)
			for i := range tt.n {
				if got := s.count(); got != i {
					t.Fatalf("count() = %d before marking %d, want %d", got, i, i)
				}
				s.mark(i)
			}
			if got := s.count(); got != tt.n {
				t.Errorf("count() = %d, want %d", got, tt.n)
			}
			if got := s.firstMissing(); got != -1 {
				t.Errorf("firstMissing() = %d on full set, want -1", got)
			}
		})
	}
}

func TestSlotSet_FirstMissing(t *testing.T) {
	s := newSlotSet(130)
	for i := range 130 {
		if i != 70 {
			s.mark(i)
		}
	}
	if got := s.firstMissing(); got != 70 {
		t.Errorf("firstMissing() = %d, want 70", got)
	}

	s.mark(70)
	if got := s.firstMissing(); got != -1 {
		t.Errorf("firstMissing() = %d, want -1", got)
	}
}

func TestSlotSet_Clear(t *testing.T) {
	s := newSlotSet(100)
	for i := range 100 {
		s.mark(i)
	}
	s.clear()

	if got := s.count(); got != 0 {
		t.Errorf("count() = %d after clear, want 0", got)
	}
	if got := s.firstMissing(); got != 0 {
		t.Errorf("firstMissing() = %d after clear, want 0", got)
	}
	if !s.mark(99) {
		t.Error("mark(99) = false after clear, want true")
	}
}
