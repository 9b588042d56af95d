package services

import (
	"sort"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/shopspring/decimal"
)

// Section is one lifecycle group of receivables
type Section struct {
	Status      models.ReceivableStatus `json:"status"`
	Receivables []models.Receivable     `json:"receivables"`
	Total       decimal.Decimal         `json:"total"` // Collected for paid, owed otherwise
}

// Count returns the number of receivables in the section
func (s *Section) Count() int {
	return len(s.Receivables)
}

// IDs returns the ids of the section's receivables
func (s *Section) IDs() []string {
	ids := make([]string, len(s.Receivables))
	for i := range s.Receivables {
		ids[i] = s.Receivables[i].ID
	}
	return ids
}

// PartitionSections regroups list by classified status. Sections come in
// models.SectionOrder and are always all present. Receivables keep the list's
// order, except in the paid section which is sorted by settlement date,
// newest first.
func PartitionSections(list []models.Receivable, today time.Time) []Section {
	index := make(map[models.ReceivableStatus]int, len(models.SectionOrder))
	sections := make([]Section, len(models.SectionOrder))
	for i, status := range models.SectionOrder {
		index[status] = i
		sections[i] = Section{Status: status, Total: decimal.Zero}
	}

	for _, r := range list {
		i, ok := index[r.Status(today)]
		if !ok {
			continue
		}
		sections[i].Receivables = append(sections[i].Receivables, r)
		sections[i].Total = sections[i].Total.Add(r.SelectionAmount(today))
	}

	paid := sections[index[models.StatusPaid]].Receivables
	sort.SliceStable(paid, func(i, j int) bool {
		return paid[i].SettlementDate().After(paid[j].SettlementDate())
	})

	return sections
}

// FindSection returns the section with the given status
func FindSection(sections []Section, status models.ReceivableStatus) (*Section, bool) {
	for i := range sections {
		if sections[i].Status == status {
			return &sections[i], true
		}
	}
	return nil, false
}
