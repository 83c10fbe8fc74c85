package record

import "strings"

// Keywords derives a case-folded, deduplicated keyword set from a record's
// text fields: company and employer names, tokenized project title and role,
// technologies, tokenized strengths, and metadata tags.
//
// Tokens of length <= 2 are dropped. The order of survivors is the insertion
// order of first occurrence and is not part of the contract; callers truncate
// to their own maximum before use.
func Keywords(rec *Record) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(word string) {
		word = strings.ToLower(strings.TrimSpace(word))
		if len(word) <= 2 || seen[word] {
			return
		}
		seen[word] = true
		out = append(out, word)
	}
	addTokens := func(phrase string) {
		for _, w := range strings.Fields(phrase) {
			add(w)
		}
	}

	add(rec.Employer.Company)
	add(rec.Employer.Name)
	addTokens(rec.Project.Title)
	addTokens(rec.Project.Role)
	for _, tech := range rec.Project.Technologies {
		add(tech)
	}
	for _, s := range rec.Reference.Strengths {
		addTokens(s)
	}
	for _, tag := range rec.Metadata.Tags {
		add(tag)
	}
	return out
}
