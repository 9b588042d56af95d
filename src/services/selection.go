package services

import (
	"sort"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/shopspring/decimal"
)

// Selection is a process-local set of receivable ids. It is never persisted.
// Every id must refer to a receivable in the last-loaded list; Prune enforces
// that after each reload.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips id in or out of the selection and reports whether it is now selected
func (s *Selection) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Select adds ids to the selection
func (s *Selection) Select(ids ...string) {
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Deselect removes ids from the selection
func (s *Selection) Deselect(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// Contains reports whether id is selected
func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in lexical order
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Prune drops ids that are not present in list. It returns a
// StaleSelectionError naming the dropped ids, or nil when nothing was dropped.
func (s *Selection) Prune(list []models.Receivable) error {
	present := make(map[string]struct{}, len(list))
	for i := range list {
		present[list[i].ID] = struct{}{}
	}

	var dropped []string
	for id := range s.ids {
		if _, ok := present[id]; !ok {
			dropped = append(dropped, id)
			delete(s.ids, id)
		}
	}
	if len(dropped) == 0 {
		return nil
	}
	sort.Strings(dropped)
	return &models.StaleSelectionError{IDs: dropped}
}

// Resolve returns the selected receivables from list, in list order
func (s *Selection) Resolve(list []models.Receivable) []models.Receivable {
	selected := make([]models.Receivable, 0, len(s.ids))
	for i := range list {
		if s.Contains(list[i].ID) {
			selected = append(selected, list[i])
		}
	}
	return selected
}

// Total sums the selected receivables: what was collected for paid ones and
// what is still owed for the rest
func (s *Selection) Total(list []models.Receivable, today time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Resolve(list) {
		total = total.Add(r.SelectionAmount(today))
	}
	return total
}

// PartitionEligible splits receivables into those bulk operations may touch
// and the ids of those they may not
func PartitionEligible(receivables []models.Receivable, today time.Time) ([]models.Receivable, []string) {
	eligible := make([]models.Receivable, 0, len(receivables))
	var ineligible []string
	for _, r := range receivables {
		if r.IsEligibleForBatch(today) {
			eligible = append(eligible, r)
		} else {
			ineligible = append(ineligible, r.ID)
		}
	}
	return eligible, ineligible
}
