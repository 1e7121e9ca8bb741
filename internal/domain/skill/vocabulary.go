package skill

import "strings"

// VisibleLimit is how many search matches are shown before the overflow list.
const VisibleLimit = 3

var DefaultVocabulary = []string{
	"JavaScript",
	"Python",
	"Java",
	"Go",
	"TypeScript",
	"React",
	"Node.js",
	"SQL",
	"PostgreSQL",
	"MongoDB",
	"Docker",
	"Kubernetes",
	"AWS",
	"Machine Learning",
	"Data Analysis",
	"UI/UX Design",
	"Figma",
	"Project Management",
}

type Vocabulary struct {
	names []string
}

// NewVocabulary trims and dedupes names case-insensitively, falling back to
// DefaultVocabulary when nothing usable is left.
func NewVocabulary(names []string) Vocabulary {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		out = append(out, DefaultVocabulary...)
	}
	return Vocabulary{names: out}
}

func (v Vocabulary) Names() []string {
	return append([]string(nil), v.names...)
}

type SearchResult struct {
	Query    string   `json:"query"`
	Visible  []string `json:"visible"`
	Overflow []string `json:"overflow"`
}

// Search is a case-insensitive substring match in vocabulary order. The first
// VisibleLimit matches are visible, the rest overflow.
func (v Vocabulary) Search(query string) SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	res := SearchResult{Query: strings.TrimSpace(query), Visible: []string{}, Overflow: []string{}}
	for _, n := range v.names {
		if !strings.Contains(strings.ToLower(n), q) {
			continue
		}
		if len(res.Visible) < VisibleLimit {
			res.Visible = append(res.Visible, n)
			continue
		}
		res.Overflow = append(res.Overflow, n)
	}
	return res
}
