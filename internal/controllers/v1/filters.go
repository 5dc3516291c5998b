package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// stringFilters applies the fuzzy filter for the name column and the search
// over all searchable columns.
//
// A name parameter that is set but empty matches resources with an empty name.
func stringFilters(db, query *gorm.DB, setFields []string, name, search string, searchColumns ...string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if search != "" && len(searchColumns) > 0 {
		pattern := fmt.Sprintf("%%%s%%", search)

		or := db.Where(fmt.Sprintf("%s LIKE ?", searchColumns[0]), pattern)
		for _, column := range searchColumns[1:] {
			or = or.Or(fmt.Sprintf("%s LIKE ?", column), pattern)
		}

		query = query.Where(or)
	}

	return query
}
