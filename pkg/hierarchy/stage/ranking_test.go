package stage

import (
	"errors"
	"testing"
)

func TestLongestPathRanking(t *testing.T) {
	m := newModel(t, chain(nil,
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"a", "c"},
	))

	stats, err := LongestPathRanking{}.Execute(m)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if stats.Visited != 3 {
		t.Errorf("Visited = %d, want 3", stats.Visited)
	}

	want := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, r := range want {
		v, _ := m.Vertex(id)
		if v.Rank() != r {
			t.Errorf("rank(%s) = %d, want %d", id, v.Rank(), r)
		}
	}

	long := m.Edges()[2]
	if long.MinRank() != 0 || long.MaxRank() != 2 {
		t.Errorf("a->c ranks = [%d,%d], want [0,2]", long.MinRank(), long.MaxRank())
	}
	if long.Span() != 1 {
		t.Errorf("a->c Span() = %d, want 1", long.Span())
	}
	if short := m.Edges()[0]; short.Span() != 0 {
		t.Errorf("a->b Span() = %d, want 0", short.Span())
	}
}

func TestLongestPathRanking_AfterCycleRemoval(t *testing.T) {
	m := newModel(t, chain([]string{"a"},
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"},
	))

	if _, err := (CycleRemover{}).Execute(m); err != nil {
		t.Fatal(err)
	}
	if _, err := (LongestPathRanking{}).Execute(m); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	for _, e := range m.Edges() {
		if e.Source().Rank() >= e.Target().Rank() {
			t.Errorf("edge %v: source rank %d >= target rank %d", e.IDs, e.Source().Rank(), e.Target().Rank())
		}
	}
}

func TestLongestPathRanking_SelfLoop(t *testing.T) {
	m := newModel(t, chain(nil, [2]string{"a", "a"}, [2]string{"a", "b"}))

	if _, err := (LongestPathRanking{}).Execute(m); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	loop := m.Edges()[0]
	if loop.MinRank() != 0 || loop.MaxRank() != 0 {
		t.Errorf("self-loop ranks = [%d,%d], want [0,0]", loop.MinRank(), loop.MaxRank())
	}
	b, _ := m.Vertex("b")
	if b.Rank() != 1 {
		t.Errorf("rank(b) = %d, want 1", b.Rank())
	}
}

func TestLongestPathRanking_Cyclic(t *testing.T) {
	m := newModel(t, chain(nil, [2]string{"a", "b"}, [2]string{"b", "a"}))

	if _, err := (LongestPathRanking{}).Execute(m); !errors.Is(err, ErrCyclicModel) {
		t.Errorf("Execute() error = %v, want %v", err, ErrCyclicModel)
	}
}

func TestLongestPathRanking_NilModel(t *testing.T) {
	if _, err := (LongestPathRanking{}).Execute(nil); !errors.Is(err, ErrNilModel) {
		t.Errorf("Execute(nil) error = %v, want %v", err, ErrNilModel)
	}
}

func TestForName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"cycles", NameCycles, false},
		{" Swimlanes ", NameSwimlanes, false},
		{"RANK", NameRank, false},
		{"barycenter", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ForName(tt.name, Options{})
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownStage) {
					t.Errorf("ForName(%q) error = %v, want %v", tt.name, err, ErrUnknownStage)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForName(%q) error: %v", tt.name, err)
			}
			if s.Name() != tt.want {
				t.Errorf("ForName(%q).Name() = %q, want %q", tt.name, s.Name(), tt.want)
			}
		})
	}
}

func TestForNameCoverUnreached(t *testing.T) {
	s, err := ForName(NameSwimlanes, Options{CoverUnreached: true})
	if err != nil {
		t.Fatal(err)
	}
	if sw, ok := s.(SwimlaneOrdering); !ok || !sw.CoverUnreached {
		t.Errorf("ForName() = %#v, want SwimlaneOrdering with CoverUnreached", s)
	}
}
