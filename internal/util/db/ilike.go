package db

import (
	"fmt"
	"strings"
)

var likeEscaper = strings.NewReplacer(
	"\\", "\\\\",
	"%", "\\%",
	"_", "\\_",
)

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(val string) string {
	return likeEscaper.Replace(val)
}

// ILikeSearch splits a free text query into terms and returns one "%term%"
// pattern per term, each to be matched with ILIKE and combined with AND.
func ILikeSearch(query string) []string {
	terms := strings.Fields(query)
	patterns := make([]string, 0, len(terms))

	for _, term := range terms {
		patterns = append(patterns, "%"+EscapeLike(term)+"%")
	}

	return patterns
}

// ILikeClause returns a WHERE fragment matching every pattern against any of the
// given columns, numbering placeholders from start.
// ILikeClause(1, 2, "name", "address") -> "(name ILIKE $1 OR address ILIKE $1) AND (name ILIKE $2 OR address ILIKE $2)"
func ILikeClause(start int, patterns int, columns ...string) string {
	groups := make([]string, 0, patterns)

	for i := 0; i < patterns; i++ {
		ors := make([]string, 0, len(columns))
		for _, col := range columns {
			ors = append(ors, fmt.Sprintf("%s ILIKE $%d", col, start+i))
		}
		groups = append(groups, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(groups, " AND ")
}
