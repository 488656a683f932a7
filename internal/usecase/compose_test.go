package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"docqa/internal/domain"
)

func hit(snippet string) domain.RetrievedHit {
	return domain.RetrievedHit{Source: "doc.txt", Snippet: snippet}
}

func TestComposeSentinelOnEmptyHits(t *testing.T) {
	got := Compose("What do polar bears eat?", nil, DefaultMaxSentences, DefaultMaxChars)
	if got != domain.Sentinel {
		t.Errorf("expected the sentinel, got %q", got)
	}
	if got == "" {
		t.Error("answer must never be empty")
	}
}

func TestComposeSentinelOnZeroOverlap(t *testing.T) {
	hits := []domain.RetrievedHit{hit("Quantum chromodynamics concerns quarks and gluons.")}

	got := Compose("Where do polar bears hunt?", hits, DefaultMaxSentences, DefaultMaxChars)
	if got != domain.Sentinel {
		t.Errorf("expected the sentinel for zero-overlap snippets, got %q", got)
	}
}

func TestComposePolarBears(t *testing.T) {
	hits := []domain.RetrievedHit{
		hit("Polar bears rely on sea ice to hunt seals. They are strong swimmers."),
	}

	got := Compose("What do polar bears eat?", hits, DefaultMaxSentences, DefaultMaxChars)
	if got == domain.Sentinel {
		t.Fatal("expected a grounded answer, got the sentinel")
	}
	if !strings.HasPrefix(got, "Polar bears rely on sea ice to hunt seals.") {
		t.Errorf("expected the overlapping sentence first, got %q", got)
	}
	if strings.Contains(got, "strong swimmers") {
		t.Errorf("zero-overlap sentence must not be emitted, got %q", got)
	}
}

func TestComposeDeterministic(t *testing.T) {
	hits := []domain.RetrievedHit{
		hit("Polar bears rely on sea ice to hunt seals. Sea ice is shrinking each year."),
		hit("Seals rest on sea ice between dives. The ocean is vast."),
	}
	query := "What do polar bears eat on sea ice?"

	first := Compose(query, hits, 3, 600)
	second := Compose(query, hits, 3, 600)
	if first != second {
		t.Errorf("expected byte-identical output, got %q vs %q", first, second)
	}
}

func TestComposeDeduplicatesSentences(t *testing.T) {
	hits := []domain.RetrievedHit{
		hit("Polar bears hunt seals. Polar bears hunt seals."),
		hit("polar bears hunt seals."),
	}

	got := Compose("What do polar bears hunt?", hits, 4, 600)
	if n := strings.Count(strings.ToLower(got), "polar bears hunt seals."); n != 1 {
		t.Errorf("expected the duplicate sentence once, found %d times in %q", n, got)
	}
}

func TestComposeTruncation(t *testing.T) {
	long := "Polar bears hunt seals across " + strings.Repeat("very ", 60) + "large distances."
	hits := []domain.RetrievedHit{hit(long)}

	got := Compose("Where do polar bears hunt seals?", hits, 3, 100)
	if n := utf8.RuneCountInString(got); n > 100 {
		t.Errorf("answer exceeds max chars: %d", n)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated answer must end with the ellipsis marker, got %q", got)
	}
}

func TestComposeRespectsSentenceBudget(t *testing.T) {
	hits := []domain.RetrievedHit{
		hit("Bears swim. Bears hunt. Bears rest. Bears roam. Bears dive."),
	}

	got := Compose("What do bears do?", hits, 2, 600)
	if n := strings.Count(got, "."); n > 2 {
		t.Errorf("expected at most 2 sentences, got %q", got)
	}
}

func TestComposeExaminesOnlyTopHits(t *testing.T) {
	filler := hit("Completely unrelated text about compilers and registers.")
	hits := []domain.RetrievedHit{filler, filler, filler, filler, filler,
		hit("Polar bears hunt seals on sea ice.")}

	got := Compose("What do polar bears hunt?", hits, 3, 600)
	if got != domain.Sentinel {
		t.Errorf("expected the sixth hit to be ignored, got %q", got)
	}
}

func TestAnswerBudget(t *testing.T) {
	tests := []struct {
		query    string
		expected int
	}{
		{"Where do polar bears hunt?", 3},
		{"List the threats to polar bears", 4},
		{"Compare seals and walruses", 4},
		{"What is sea ice?", 4},
		{"what are the main findings", 4},
		{"Who discovered this?", 4},
		{"difference between the two", 4},
	}

	for _, tt := range tests {
		if got := answerBudget(tt.query); got != tt.expected {
			t.Errorf("answerBudget(%q) = %d, expected %d", tt.query, got, tt.expected)
		}
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First one. Second one! Third one? Tail without punctuation")
	want := []string{"First one.", "Second one!", "Third one?", "Tail without punctuation"}

	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSplitSentencesDropsFragments(t *testing.T) {
	got := splitSentences("Ok. A. Something longer here.")
	for _, s := range got {
		if utf8.RuneCountInString(s) <= 2 {
			t.Errorf("fragment %q should have been dropped", s)
		}
	}
}

func TestSplitSentencesCap(t *testing.T) {
	text := strings.Repeat("This is a sentence. ", 80)
	if got := splitSentences(text); len(got) > 50 {
		t.Errorf("expected at most 50 sentences, got %d", len(got))
	}
}
