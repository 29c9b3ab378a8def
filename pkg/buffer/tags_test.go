package buffer

import (
	"errors"
	"testing"
)

type tableLog struct {
	added, removed []string
}

func (l *tableLog) TagAdded(t *Tag)   { l.added = append(l.added, t.Name()) }
func (l *tableLog) TagRemoved(t *Tag) { l.removed = append(l.removed, t.Name()) }

func TestTagTable_AddLookupRemove(t *testing.T) {
	tt := NewTagTable()
	log := &tableLog{}
	cancel := tt.Subscribe(log)
	defer cancel()

	code, err := tt.Create("code", map[string]any{"spell_check": false})
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := code.Property("spell_check"); !ok || v != false {
		t.Fatalf("property = %v, %v", v, ok)
	}
	if _, err := tt.Create("code", nil); !errors.Is(err, ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
	if err := tt.Add(code); !errors.Is(err, ErrTagExists) {
		t.Fatalf("re-adding a tag should fail, got %v", err)
	}
	if tt.Lookup("code") != code || tt.Lookup("missing") != nil {
		t.Fatal("Lookup mismatch")
	}

	code.apply(0, 4)
	tt.Remove(code)
	if tt.Lookup("code") != nil || tt.Len() != 0 || len(code.spans) != 0 {
		t.Fatal("tag not fully removed")
	}
	if len(log.added) != 1 || len(log.removed) != 1 {
		t.Fatalf("observer saw added=%v removed=%v", log.added, log.removed)
	}
}

func TestTag_HasAndWithin(t *testing.T) {
	tag := NewTag("x", nil)
	tag.apply(2, 4)
	tag.apply(8, 10)
	for off, want := range map[int]bool{1: false, 2: true, 3: true, 4: false, 9: true, 10: false} {
		if got := tag.has(off); got != want {
			t.Errorf("has(%d) = %v", off, got)
		}
	}
	got := tag.within(3, 9)
	if len(got) != 2 || got[0] != (Span{3, 4}) || got[1] != (Span{8, 9}) {
		t.Fatalf("within = %v", got)
	}
}

func TestTag_ApplyRemoveSpans(t *testing.T) {
	tests := []struct {
		name string
		ops  func(*Tag)
		want []Span
	}{
		{"merge adjacent", func(x *Tag) { x.apply(0, 2); x.apply(2, 4) }, []Span{{0, 4}}},
		{"bridge two", func(x *Tag) { x.apply(0, 2); x.apply(6, 8); x.apply(1, 7) }, []Span{{0, 8}}},
		{"insert between", func(x *Tag) { x.apply(0, 2); x.apply(8, 9); x.apply(4, 5) }, []Span{{0, 2}, {4, 5}, {8, 9}}},
		{"split", func(x *Tag) { x.apply(0, 10); x.remove(3, 5) }, []Span{{0, 3}, {5, 10}}},
		{"trim across", func(x *Tag) { x.apply(0, 3); x.apply(5, 8); x.apply(10, 12); x.remove(2, 11) }, []Span{{0, 2}, {11, 12}}},
		{"remove gap", func(x *Tag) { x.apply(0, 2); x.apply(5, 6); x.remove(2, 5) }, []Span{{0, 2}, {5, 6}}},
		{"remove all", func(x *Tag) { x.apply(1, 2); x.apply(4, 6); x.remove(0, 9) }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := NewTag("x", nil)
			tt.ops(tag)
			if len(tag.spans) != len(tt.want) {
				t.Fatalf("spans = %v, want %v", tag.spans, tt.want)
			}
			for i := range tt.want {
				if tag.spans[i] != tt.want[i] {
					t.Fatalf("spans = %v, want %v", tag.spans, tt.want)
				}
			}
		})
	}
}
