package usecase

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"docqa/internal/adapter/analyzer"
	"docqa/internal/domain"
)

const (
	// DefaultMaxSentences is the answer budget for ordinary questions;
	// enumerative questions (see answerBudget) get one more.
	DefaultMaxSentences = 3

	// DefaultMaxChars bounds the composed answer length.
	DefaultMaxChars = 600

	// composeHitCap bounds how many retrieved hits feed the synthesizer.
	composeHitCap = 5

	// sentenceCap bounds sentences examined per snippet.
	sentenceCap = 50
)

// cueWords widen the answer for enumerative questions. The list is matched
// as substrings of the lowercased query.
var cueWords = []string{"list", "compare", "difference", "differences", "who", "what is", "what are"}

// Compose builds a concise, question-focused answer from the retrieved hits
// without calling any external model. Sentences from the top hits are scored
// by query overlap with a mild preference for brevity, deduplicated, and
// stitched together. Output is byte-identical for identical inputs.
func Compose(query string, hits []domain.RetrievedHit, maxSentences, maxChars int) string {
	queryTokens := analyzer.TokenSet(query)

	type candidate struct {
		score float64
		text  string
	}
	var candidates []candidate

	capped := hits
	if len(capped) > composeHitCap {
		capped = capped[:composeHitCap]
	}
	for _, h := range capped {
		for _, s := range splitSentences(h.Snippet) {
			if score := scoreSentence(queryTokens, s); score > 0 {
				candidates = append(candidates, candidate{score: score, text: s})
			}
		}
	}

	if len(candidates) == 0 {
		return domain.Sentinel
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	var picked []string
	seen := make(map[string]struct{})
	for _, c := range candidates {
		key := strings.ToLower(c.text)
		if _, dup := seen[key]; dup {
			continue
		}
		picked = append(picked, c.text)
		seen[key] = struct{}{}
		if len(picked) >= maxSentences {
			break
		}
	}

	answer := strings.TrimSpace(strings.Join(picked, " "))
	if utf8.RuneCountInString(answer) > maxChars {
		runes := []rune(answer)
		answer = strings.TrimRightFunc(string(runes[:maxChars-1]), unicode.IsSpace) + "…"
	}

	if answer == "" {
		return domain.Sentinel
	}
	return answer
}

// answerBudget returns the sentence budget for the query: one extra sentence
// for list/compare/who/what-is style questions.
func answerBudget(query string) int {
	q := strings.ToLower(query)
	for _, cue := range cueWords {
		if strings.Contains(q, cue) {
			return DefaultMaxSentences + 1
		}
	}
	return DefaultMaxSentences
}

// splitSentences breaks text into sentences on `.`, `!`, or `?` followed by
// whitespace, trims them, drops fragments of 2 characters or fewer, and caps
// the count as a safety bound.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)
	start := 0

	flush := func(end int) {
		s := strings.TrimSpace(string(runes[start:end]))
		if utf8.RuneCountInString(s) > 2 {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i := 0; i < len(runes)-1; i++ {
		r := runes[i]
		if (r == '.' || r == '!' || r == '?') && unicode.IsSpace(runes[i+1]) {
			flush(i + 1)
			if len(sentences) >= sentenceCap {
				return sentences
			}
		}
	}
	flush(len(runes))

	if len(sentences) > sentenceCap {
		sentences = sentences[:sentenceCap]
	}
	return sentences
}

// scoreSentence blends topical overlap with a slight shortness preference:
// 0.9 * Jaccard(query, sentence) + 0.1 * 1/(1+log2(1+len)). A sentence with
// no token overlap scores 0 and is not a candidate.
func scoreSentence(queryTokens map[string]struct{}, sentence string) float64 {
	tokens := analyzer.TokenSet(sentence)
	if len(tokens) == 0 {
		return 0.0
	}

	jaccard := analyzer.Jaccard(queryTokens, tokens)
	if jaccard == 0 {
		return 0.0
	}

	length := float64(utf8.RuneCountInString(sentence))
	lengthBias := 1.0 / (1.0 + math.Log2(1.0+length))
	return jaccard*0.9 + lengthBias*0.1
}
