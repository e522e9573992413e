package deck

import "strings"

// SelectionKey is the key the chosen group order is stored under.
const SelectionKey = "p"

const selectionSeparators = "-.,;"

// ParseSelection splits s on any of '-', '.', ',' and ';' and keeps the ids known accepts, in
// order. Empty and unknown ids are dropped silently. known may be nil to accept every id.
func ParseSelection(s string, known func(id string) bool) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(selectionSeparators, r)
	})
	out := []string{}
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if known != nil && !known(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// JoinSelection renders ids as a selection string.
func JoinSelection(ids []string) string {
	return strings.Join(ids, "-")
}
