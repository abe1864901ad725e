package confighash

import (
	"sort"
	"strings"
)

// Attribute is one typed attribute of a configuration, e.g. {STORAGE, 128GB, 1}.
type Attribute struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Order int    `json:"order"`
}

// GenerateConfigSignature renders a readable signature such as
// "STORAGE:128GB|COLOR:BLACK". It is for display only and plays no part in
// identity.
func GenerateConfigSignature(attrs []Attribute) string {
	sorted := make([]Attribute, len(attrs))
	copy(sorted, attrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	parts := make([]string, 0, len(sorted))
	for _, a := range sorted {
		parts = append(parts, strings.TrimSpace(a.Type)+":"+strings.TrimSpace(a.Value))
	}
	return strings.ToUpper(strings.Join(parts, "|"))
}
