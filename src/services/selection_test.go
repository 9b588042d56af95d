package services

import (
	"errors"
	"testing"
	"time"

	"github.com/livefire2015/ez-receivables/src/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)

func testReceivable(id string, pending float64, due time.Time, stored models.ReceivableStatus) models.Receivable {
	return models.Receivable{
		ID:             id,
		ClientName:     "Client " + id,
		OriginalAmount: decimal.NewFromFloat(pending),
		PendingAmount:  decimal.NewFromFloat(pending),
		IssueDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		DueDate:        due,
		StoredStatus:   stored,
	}
}

func TestSelectionToggleAndClear(t *testing.T) {
	s := NewSelection()

	assert.True(t, s.Toggle("a"))
	assert.True(t, s.Toggle("b"))
	assert.False(t, s.Toggle("a"))
	assert.Equal(t, []string{"b"}, s.IDs())

	s.Select("c", "d")
	s.Deselect("d")
	assert.Equal(t, []string{"b", "c"}, s.IDs())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestSelectionPruneDropsVanishedIDs(t *testing.T) {
	s := NewSelection()
	s.Select("a", "gone", "b")

	list := []models.Receivable{{ID: "a"}, {ID: "b"}}
	err := s.Prune(list)

	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrStaleSelection))
	var stale *models.StaleSelectionError
	require.True(t, errors.As(err, &stale))
	assert.Equal(t, []string{"gone"}, stale.IDs)
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	assert.NoError(t, s.Prune(list))
}

func TestSelectionTotalDuality(t *testing.T) {
	paid := models.Receivable{
		ID:              "paid",
		OriginalAmount:  decimal.NewFromInt(50),
		InterestAccrued: decimal.NewFromInt(5),
		PendingAmount:   decimal.Zero,
		StoredStatus:    models.StatusPaid,
	}
	pending := testReceivable("pending", 30, testToday.AddDate(0, 1, 0), models.StatusPending)
	other := testReceivable("other", 999, testToday.AddDate(0, 1, 0), models.StatusPending)

	s := NewSelection()
	s.Select("paid", "pending")

	total := s.Total([]models.Receivable{paid, pending, other}, testToday)
	assert.Equal(t, "85.00", total.StringFixed(2))
}

func TestPartitionEligible(t *testing.T) {
	list := []models.Receivable{
		testReceivable("open", 10, testToday.AddDate(0, 0, 5), models.StatusPending),
		testReceivable("late", 10, testToday.AddDate(0, 0, -5), models.StatusPending),
		testReceivable("settled", 0, testToday.AddDate(0, 0, -5), models.StatusPaid),
	}

	eligible, ineligible := PartitionEligible(list, testToday)

	require.Len(t, eligible, 2)
	assert.Equal(t, "open", eligible[0].ID)
	assert.Equal(t, "late", eligible[1].ID)
	assert.Equal(t, []string{"settled"}, ineligible)
}
