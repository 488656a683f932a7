package analyzer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Polar bears hunt seals.", []string{"polar", "bears", "hunt", "seals"}},
		{"it's 2024, ALREADY!", []string{"it's", "2024", "already"}},
		{"", nil},
		{"---  ...", nil},
	}

	for _, tt := range tests {
		got := Tokenize(tt.input)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Tokenize(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestJaccardBounds(t *testing.T) {
	a := TokenSet("polar bears hunt seals")
	b := TokenSet("seals are hunted near sea ice")

	score := Jaccard(a, b)
	if score < 0 || score > 1 {
		t.Errorf("expected score in [0,1], got %f", score)
	}
	if score == 0 {
		t.Error("expected non-zero overlap for shared token")
	}
}

func TestJaccardEmptySets(t *testing.T) {
	nonEmpty := TokenSet("hello world")

	if got := Jaccard(nil, nonEmpty); got != 0.0 {
		t.Errorf("expected 0.0 for empty left set, got %f", got)
	}
	if got := Jaccard(nonEmpty, nil); got != 0.0 {
		t.Errorf("expected 0.0 for empty right set, got %f", got)
	}
	if got := Jaccard(nil, nil); got != 0.0 {
		t.Errorf("expected 0.0 for both empty, got %f", got)
	}
}

func TestJaccardIdenticalSets(t *testing.T) {
	a := TokenSet("sea ice hunting seasons")
	b := TokenSet("hunting seasons sea ice")

	if got := Jaccard(a, b); got != 1.0 {
		t.Errorf("expected 1.0 for identical sets, got %f", got)
	}

	c := TokenSet("sea ice hunting seasons shrink")
	if got := Jaccard(a, c); got >= 1.0 {
		t.Errorf("expected score below 1.0 for differing sets, got %f", got)
	}
}

func TestJaccardDisjointSets(t *testing.T) {
	a := TokenSet("alpha beta")
	b := TokenSet("gamma delta")

	if got := Jaccard(a, b); got != 0.0 {
		t.Errorf("expected 0.0 for disjoint sets, got %f", got)
	}
}
