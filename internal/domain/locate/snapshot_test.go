package locate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "locates/internal/domain/locate/valueobjects"
)

func newSnapshotWith(t *testing.T, numbers ...string) *Snapshot {
	t.Helper()
	orders := make([]*WorkOrder, 0, len(numbers))
	for _, n := range numbers {
		orders = append(orders, newExcavatorOrder(t, n))
	}
	s := NewSnapshot(SnapshotParams{FilterStartDate: "2024-05-01", FilterEndDate: "2024-05-13"}, orders, testNow)
	require.NoError(t, s.SetID(1))
	return s
}

func TestNewSnapshot_Defaults(t *testing.T) {
	s := newSnapshotWith(t, "A", "B")

	assert.Equal(t, DefaultSource, s.Source())
	assert.Equal(t, 2, s.TotalWorkOrders())
	assert.True(t, testNow.Equal(s.ScrapedAt()))
	assert.Error(t, s.SetID(2), "id is assigned once")
}

func TestReconstructSnapshot_RequiresID(t *testing.T) {
	_, err := ReconstructSnapshot(0, SnapshotParams{}, nil, nil, testNow, testNow, testNow)
	assert.Error(t, err)
}

func TestSoftDeleteThenRestore_PreservesCallData(t *testing.T) {
	s := newSnapshotWith(t, "A", "B")
	wo, _ := s.FindByNumber("A")
	require.NoError(t, wo.RecordCall(CallRecord{CallType: vo.CallTypeStandard, CalledBy: "Lee"}, testNow))
	before := wo.State()

	deleted, err := s.SoftDelete(wo.ID(), DeleteRecord{DeletedBy: "Ops", DeletedByEmail: "ops@example.com"}, testNow)
	require.NoError(t, err)

	assert.Equal(t, 1, s.TotalWorkOrders())
	assert.Regexp(t, `^dwo_`, deleted.ID())
	assert.Equal(t, before.ID, deleted.OriginalWorkOrderID())
	assert.Equal(t, DeletedFromDashboard, deleted.State().DeletedFrom)
	assert.Len(t, s.History(), 1)
	_, live := s.FindWorkOrder(before.ID)
	assert.False(t, live)

	restored, err := s.Restore(deleted.ID(), "Ops", "ops@example.com", nil, testNow.Add(time.Minute))
	require.NoError(t, err)

	after := restored.State()
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, "A", after.WorkOrderNumber)
	assert.True(t, before.CalledAt.Equal(*after.CalledAt))
	assert.True(t, before.CompletionDate.Equal(*after.CompletionDate))
	assert.Equal(t, vo.WorkflowInProgress, after.WorkflowStatus)
	assert.Equal(t, "Ops", after.Metadata[MetaRestoredBy])
	assert.Equal(t, 2, s.TotalWorkOrders())
	assert.Empty(t, s.History())
	assert.Empty(t, s.DeletedWorkOrders())
}

func TestRestore_FreshIDWhenOriginalIsLive(t *testing.T) {
	s := newSnapshotWith(t, "A")
	wo, _ := s.FindByNumber("A")
	deleted, err := s.SoftDelete(wo.ID(), DeleteRecord{DeletedBy: "Ops"}, testNow)
	require.NoError(t, err)

	inUse := func(id string) bool { return id == wo.ID() }
	restored, err := s.Restore(deleted.ID(), "Ops", "", inUse, testNow)
	require.NoError(t, err)

	assert.NotEqual(t, wo.ID(), restored.ID())
	assert.Regexp(t, `^wo_`, restored.ID())
}

func TestRestore_Errors(t *testing.T) {
	s := newSnapshotWith(t, "A", "B")
	a, _ := s.FindByNumber("A")
	b, _ := s.FindByNumber("B")
	delA, _ := s.SoftDelete(a.ID(), DeleteRecord{DeletedBy: "Ops"}, testNow)
	delB, _ := s.SoftDelete(b.ID(), DeleteRecord{DeletedBy: "Ops"}, testNow)

	_, err := s.Restore("dwo_missing", "Ops", "", nil, testNow)
	assert.ErrorIs(t, err, ErrDeletedOrderNotFound)

	require.NoError(t, s.PermanentlyDelete(delA.ID(), testNow))
	_, err = s.Restore(delA.ID(), "Ops", "", nil, testNow)
	assert.ErrorIs(t, err, ErrDeletedOrderNotFound)

	// Entries persisted with the restored flag still set are reported as conflicts.
	delB.state.Restored = true
	_, err = s.Restore(delB.ID(), "Ops", "", nil, testNow)
	assert.ErrorIs(t, err, ErrAlreadyRestored)
}

func TestPermanentlyDelete(t *testing.T) {
	s := newSnapshotWith(t, "A")
	a, _ := s.FindByNumber("A")
	del, _ := s.SoftDelete(a.ID(), DeleteRecord{}, testNow)

	require.NoError(t, s.PermanentlyDelete(del.ID(), testNow))

	assert.Empty(t, s.History())
	assert.Empty(t, s.DeletedWorkOrders())
	assert.False(t, s.HasDeleted(del.ID()))
	assert.ErrorIs(t, s.PermanentlyDelete(del.ID(), testNow), ErrDeletedOrderNotFound)
	_, err := s.Restore(del.ID(), "Ops", "", nil, testNow)
	assert.ErrorIs(t, err, ErrDeletedOrderNotFound)
}

func TestPermanentlyDeleteMatching_ByEitherID(t *testing.T) {
	s := newSnapshotWith(t, "A", "B", "C")
	a, _ := s.FindByNumber("A")
	b, _ := s.FindByNumber("B")
	delA, _ := s.SoftDelete(a.ID(), DeleteRecord{}, testNow)
	_, _ = s.SoftDelete(b.ID(), DeleteRecord{}, testNow)

	matched := s.PermanentlyDeleteMatching([]string{delA.ID(), b.ID(), "dwo_nope"}, testNow)

	assert.ElementsMatch(t, []string{delA.ID(), b.ID()}, matched)
	assert.Empty(t, s.History())
	assert.Empty(t, s.DeletedWorkOrders())
}

func TestClearHistory(t *testing.T) {
	s := newSnapshotWith(t, "A", "B")
	a, _ := s.FindByNumber("A")
	b, _ := s.FindByNumber("B")
	delA, _ := s.SoftDelete(a.ID(), DeleteRecord{}, testNow)
	_, _ = s.SoftDelete(b.ID(), DeleteRecord{}, testNow)
	require.NoError(t, s.PermanentlyDelete(delA.ID(), testNow))

	assert.Equal(t, 1, s.ClearHistory(testNow))
	assert.Empty(t, s.DeletedWorkOrders())
	assert.Equal(t, 0, s.ClearHistory(testNow))
}

func TestSoftDelete_NotFound(t *testing.T) {
	s := newSnapshotWith(t, "A")
	_, err := s.SoftDelete("wo_missing", DeleteRecord{}, testNow)
	assert.ErrorIs(t, err, ErrWorkOrderNotFound)
}

func TestExpireDueTimers_Idempotent(t *testing.T) {
	s := newSnapshotWith(t, "A", "B", "C")
	a, _ := s.FindByNumber("A")
	b, _ := s.FindByNumber("B")
	require.NoError(t, a.RecordCall(CallRecord{CallType: vo.CallTypeEmergency, CalledBy: "Lee"}, testNow))
	require.NoError(t, b.RecordCall(CallRecord{CallType: vo.CallTypeStandard, CalledBy: "Lee"}, testNow))

	sweepAt := testNow.Add(5 * time.Hour)
	first := s.ExpireDueTimers(sweepAt)
	second := s.ExpireDueTimers(sweepAt)

	require.Len(t, first, 1)
	assert.Equal(t, a.ID(), first[0].ID())
	assert.Empty(t, second)
	assert.Equal(t, vo.WorkflowComplete, a.WorkflowStatus())
	assert.Equal(t, vo.WorkflowInProgress, b.WorkflowStatus())
}

func TestFindDeletedByNumber(t *testing.T) {
	s := newSnapshotWith(t, "A")
	a, _ := s.FindByNumber("A")
	_, _ = s.SoftDelete(a.ID(), DeleteRecord{}, testNow)

	d, ok := s.FindDeletedByNumber("A")
	require.True(t, ok)
	assert.Equal(t, a.ID(), d.OriginalWorkOrderID())

	_, ok = s.FindDeletedByNumber("")
	assert.False(t, ok)
}
