package services

import (
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
)

// ApplyFilter returns the receivables that pass every axis of filter,
// preserving list order. The filter must already be normalized.
func ApplyFilter(list []models.Receivable, filter models.ReceivableFilter, today time.Time) []models.Receivable {
	filtered := make([]models.Receivable, 0, len(list))
	for i := range list {
		if filter.Matches(&list[i], today) {
			filtered = append(filtered, list[i])
		}
	}
	return filtered
}

// RemoteFilter is the part of a filter that may be forwarded to the remote
// service. Status is always classified locally.
func RemoteFilter(filter models.ReceivableFilter) models.ReceivableFilter {
	return models.ReceivableFilter{
		Status:   models.StatusFilterAll,
		Query:    filter.Query,
		DateMode: filter.DateMode,
		From:     filter.From,
		To:       filter.To,
	}
}
