package corpus

import (
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"docqa/internal/domain"
)

// PreferredFile is used alone when present in the corpus directory,
// overriding glob discovery.
const PreferredFile = "my_document.txt"

// seedFile and seedText guarantee a non-empty index on first run against an
// empty directory.
const seedFile = "sample_polar_bears.txt"

const seedText = "Polar bears (Ursus maritimus) rely on sea ice to hunt seals, their primary food source. " +
	"They are strong swimmers with large paws and a thick fat layer for insulation. " +
	"Climate change reduces sea ice, shrinking hunting seasons and threatening populations."

var (
	promptsHeaderRe = regexp.MustCompile(`(?im)^[=\t ]*SECTION:[\t ]*PROMPTS.*$`)
	sectionHeaderRe = regexp.MustCompile(`(?im)^[=\t ]*SECTION:[\t ]*.+$`)
)

// Loader reads text documents from a directory.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers and reads corpus documents under dir, matching the
// comma-separated glob patterns. Files that cannot be read are skipped, so a
// single bad file never fails the whole build.
func (l *Loader) Load(dir, patterns string) ([]domain.Document, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	candidates, err := l.candidates(dir, patterns)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		seeded, err := l.seed(dir)
		if err != nil {
			return nil, err
		}
		candidates = []string{seeded}
	}

	docs := make([]domain.Document, 0, len(candidates))
	for _, path := range candidates {
		text, err := readSource(path)
		if err != nil {
			log.Printf("corpus: skipping unreadable file %s: %v", filepath.Base(path), err)
			continue
		}
		docs = append(docs, domain.Document{
			SourceID: path,
			Text:     StripExcludedSections(text),
		})
	}
	return docs, nil
}

// candidates lists the files to ingest: the preferred file alone when it
// exists, otherwise all pattern matches minus operator scaffolding, in a
// stable sorted order.
func (l *Loader) candidates(dir, patterns string) ([]string, error) {
	preferred := filepath.Join(dir, PreferredFile)
	if info, err := os.Stat(preferred); err == nil && !info.IsDir() {
		return []string{preferred}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	globs := splitPatterns(patterns)
	seen := make(map[string]struct{})
	var matches []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if isScaffolding(name) {
			continue
		}
		for _, pattern := range globs {
			ok, err := doublestar.Match(pattern, name)
			if err != nil || !ok {
				continue
			}
			path := filepath.Join(dir, name)
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				matches = append(matches, path)
			}
			break
		}
	}

	sort.Strings(matches)
	return matches, nil
}

// seed writes the built-in sample document so the index is never empty.
// Idempotent: an existing seed file is reused, not rewritten.
func (l *Loader) seed(dir string) (string, error) {
	path := filepath.Join(dir, seedFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.WriteFile(path, []byte(seedText), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// isScaffolding reports whether a file name marks operator/test scaffolding
// rather than corpus content.
func isScaffolding(name string) bool {
	if strings.HasPrefix(name, "_") {
		return true
	}
	return strings.Contains(strings.ToLower(name), "prompts")
}

func splitPatterns(patterns string) []string {
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// StripExcludedSections removes every region starting at a
// "SECTION: PROMPTS" header line and running to the next "SECTION:" header
// (or end of text). Operators use such sections to embed non-retrievable
// annotations inline in corpus files. No-op when no marker is present.
func StripExcludedSections(text string) string {
	for {
		loc := promptsHeaderRe.FindStringIndex(text)
		if loc == nil {
			return text
		}

		tail := text[loc[1]:]
		end := len(text)
		if next := sectionHeaderRe.FindStringIndex(tail); next != nil {
			end = loc[1] + next[0]
		}
		text = strings.TrimSpace(text[:loc[0]] + text[end:])
	}
}
