package formats

import (
	"maps"
	"slices"
	"strings"

	"comicbox/internal/enums"
	"comicbox/internal/metadata"
	"comicbox/internal/textutil"
	"comicbox/internal/xmltree"
)

// decodeCreditColumns reads role-named elements holding person lists. With
// repeat set every element holds one person; otherwise each holds a CSV
// list.
func decodeCreditColumns(el *xmltree.Element, columns []string, repeat bool) []metadata.Credit {
	var credits []metadata.Credit
	for _, column := range columns {
		for _, child := range el.All(column) {
			persons := []string{child.Text}
			if !repeat {
				persons = textutil.SplitList(child.Text)
			}
			for _, person := range persons {
				person = textutil.CleanString(person)
				if person == "" {
					continue
				}
				credits = append(credits, metadata.Credit{Person: person, Role: column})
			}
		}
	}
	return metadata.MergeCredits(credits)
}

// creditColumns groups persons under the columns their roles map to.
// Persons keep credit order within a column.
func creditColumns(credits []metadata.Credit, table *enums.Table) map[string][]string {
	out := map[string][]string{}
	for _, c := range credits {
		for _, column := range table.Map(c.Role) {
			if !slices.Contains(out[column], c.Person) {
				out[column] = append(out[column], c.Person)
			}
		}
	}
	return out
}

// splitPair splits "left:right" at the first colon.
func splitPair(value string) (string, string, bool) {
	left, right, ok := strings.Cut(value, ":")
	return strings.TrimSpace(left), strings.TrimSpace(right), ok
}

func sortedArcNames(arcs map[string]int) []string {
	return slices.Sorted(maps.Keys(arcs))
}
