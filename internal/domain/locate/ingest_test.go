package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "locates/internal/domain/locate/valueobjects"
)

func numbersOf(records []Details) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.WorkOrderNumber)
	}
	return out
}

func TestDeduplicate_FirstOccurrenceWins(t *testing.T) {
	records := []Details{
		{WorkOrderNumber: "A", CustomerName: "first"},
		{WorkOrderNumber: "B"},
		{WorkOrderNumber: "A", CustomerName: "second"},
		{WorkOrderNumber: ""},
		{WorkOrderNumber: ""},
	}

	got := Deduplicate(records)

	assert.Equal(t, []string{"A", "B", "", ""}, numbersOf(got))
	assert.Equal(t, "first", got[0].CustomerName)
}

func TestFilterExcavator(t *testing.T) {
	records := []Details{
		{WorkOrderNumber: "1", PriorityName: "EXCAVATOR"},
		{WorkOrderNumber: "2", PriorityName: "excavator "},
		{WorkOrderNumber: "3", PriorityName: "EXCAVATOR - RUSH"},
		{WorkOrderNumber: "4", PriorityName: "STANDARD"},
	}

	assert.Equal(t, []string{"1", "2"}, numbersOf(FilterExcavator(records, vo.PriorityMatchExact)))
	assert.Equal(t, []string{"1", "2", "3"}, numbersOf(FilterExcavator(records, vo.PriorityMatchContains)))
	assert.Equal(t, []string{"1", "2"}, numbersOf(FilterExcavator(records, "")), "invalid mode falls back to exact")
}

func TestNewSnapshotFromScrape(t *testing.T) {
	batch := &ScrapeBatch{
		FilterStartDate: "2024-05-01",
		FilterEndDate:   "2024-05-13",
		DispatchDate:    "2024-05-13",
		WorkOrders: []Details{
			{WorkOrderNumber: "A", PriorityName: "EXCAVATOR"},
			{WorkOrderNumber: "B", PriorityName: "STANDARD"},
			{WorkOrderNumber: "A", PriorityName: "EXCAVATOR"},
			{WorkOrderNumber: "C", PriorityName: "EXCAVATOR"},
		},
	}

	s := NewSnapshotFromScrape(batch, vo.PriorityMatchExact, testNow)

	require.Equal(t, 2, s.TotalWorkOrders())
	assert.Equal(t, "2024-05-13", s.DispatchDate())
	assert.Equal(t, DefaultSource, s.Source())
	ids := map[string]bool{}
	for _, wo := range s.WorkOrders() {
		assert.Equal(t, vo.OrderTypeExcavator, wo.Type())
		assert.Equal(t, vo.WorkflowCallNeeded, wo.WorkflowStatus())
		ids[wo.ID()] = true
	}
	assert.Len(t, ids, 2, "every order gets its own id")
}

func TestNewSnapshotFromScrape_Empty(t *testing.T) {
	s := NewSnapshotFromScrape(&ScrapeBatch{}, vo.PriorityMatchExact, testNow)
	assert.Equal(t, 0, s.TotalWorkOrders())
	assert.NotNil(t, s.WorkOrders())
}
