package repositories

import (
	"sort"

	"tea-backend/internal/models"
)

// DeletionOrder sorts existing tables so dependents are emptied first: known
// entity tables in reverse load order, then anything unrecognised in
// alphabetical order.
func DeletionOrder(tables []string) []string {
	present := make(map[string]bool, len(tables))
	for _, t := range tables {
		present[t] = true
	}

	ordered := make([]string, 0, len(tables))
	for i := len(models.LoadOrder) - 1; i >= 0; i-- {
		t := models.LoadOrder[i].Table()
		if present[t] {
			ordered = append(ordered, t)
			delete(present, t)
		}
	}

	var unknown []string
	for t := range present {
		unknown = append(unknown, t)
	}
	sort.Strings(unknown)
	return append(ordered, unknown...)
}
