package usecases

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"locates/internal/domain/locate"
	vo "locates/internal/domain/locate/valueobjects"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/id"
)

// testNow is Monday 2024-05-13 10:00 in New York.
var testNow = time.Date(2024, 5, 13, 14, 0, 0, 0, time.UTC)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// mockSnapshotRepository keeps snapshots in memory. Func fields override the
// in-memory behaviour when set.
type mockSnapshotRepository struct {
	mu        sync.Mutex
	snapshots map[uint]*locate.Snapshot
	nextID    uint
	updates   int

	CreateFunc            func(ctx context.Context, s *locate.Snapshot) error
	UpdateFunc            func(ctx context.Context, s *locate.Snapshot) error
	GetByIDFunc           func(ctx context.Context, id uint) (*locate.Snapshot, error)
	ListFunc              func(ctx context.Context) ([]*locate.Snapshot, error)
	FindByWorkOrderIDFunc func(ctx context.Context, workOrderID string) (*locate.Snapshot, error)
}

func newMockSnapshotRepository() *mockSnapshotRepository {
	return &mockSnapshotRepository{snapshots: make(map[uint]*locate.Snapshot)}
}

func (m *mockSnapshotRepository) Create(ctx context.Context, s *locate.Snapshot) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := s.SetID(m.nextID); err != nil {
		return err
	}
	m.snapshots[s.ID()] = s
	return nil
}

func (m *mockSnapshotRepository) Update(ctx context.Context, s *locate.Snapshot) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshots[s.ID()]; !ok {
		return locate.ErrSnapshotNotFound
	}
	m.snapshots[s.ID()] = s
	m.updates++
	return nil
}

func (m *mockSnapshotRepository) GetByID(ctx context.Context, id uint) (*locate.Snapshot, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snapshots[id]
	if !ok {
		return nil, locate.ErrSnapshotNotFound
	}
	return s, nil
}

func (m *mockSnapshotRepository) List(ctx context.Context) ([]*locate.Snapshot, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]*locate.Snapshot, 0, len(m.snapshots))
	for _, s := range m.snapshots {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID() > list[j].ID() })
	return list, nil
}

func (m *mockSnapshotRepository) FindByWorkOrderID(ctx context.Context, workOrderID string) (*locate.Snapshot, error) {
	if m.FindByWorkOrderIDFunc != nil {
		return m.FindByWorkOrderIDFunc(ctx, workOrderID)
	}
	list, _ := m.List(ctx)
	for _, s := range list {
		if _, ok := s.FindWorkOrder(workOrderID); ok {
			return s, nil
		}
	}
	return nil, locate.ErrWorkOrderNotFound
}

func (m *mockSnapshotRepository) updateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates
}

type mockScraper struct {
	ScrapeFunc func(ctx context.Context, req locate.ScrapeRequest) (*locate.ScrapeBatch, error)
	requests   []locate.ScrapeRequest
}

func (m *mockScraper) Scrape(ctx context.Context, req locate.ScrapeRequest) (*locate.ScrapeBatch, error) {
	m.requests = append(m.requests, req)
	if m.ScrapeFunc != nil {
		return m.ScrapeFunc(ctx, req)
	}
	return &locate.ScrapeBatch{}, nil
}

type mockEventDispatcher struct {
	PublishFunc    func(event events.DomainEvent) error
	PublishAllFunc func(events []events.DomainEvent) error
	published      []events.DomainEvent
}

func (m *mockEventDispatcher) Publish(event events.DomainEvent) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(event)
	}
	m.published = append(m.published, event)
	return nil
}

func (m *mockEventDispatcher) PublishAll(evts []events.DomainEvent) error {
	if m.PublishAllFunc != nil {
		return m.PublishAllFunc(evts)
	}
	m.published = append(m.published, evts...)
	return nil
}

func (m *mockEventDispatcher) eventTypes() []string {
	types := make([]string, 0, len(m.published))
	for _, e := range m.published {
		types = append(types, e.GetEventType())
	}
	return types
}

type mockLocker struct {
	TryLockFunc func(ctx context.Context, key string, ttl time.Duration) (func(), bool, error)
	keys        []string
	unlocked    int
}

func (m *mockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	m.keys = append(m.keys, key)
	if m.TryLockFunc != nil {
		return m.TryLockFunc(ctx, key, ttl)
	}
	return func() { m.unlocked++ }, true, nil
}

type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func excavatorDetails(number string) locate.Details {
	return locate.Details{
		WorkOrderNumber: number,
		PriorityName:    vo.ExcavatorPriority,
		CustomerName:    "Customer " + number,
		CustomerAddress: number + " Main St",
	}
}

func newExcavatorOrder(number string) *locate.WorkOrder {
	return locate.NewWorkOrder(excavatorDetails(number), testNow)
}

func newStandardOrder(t *testing.T, number string) *locate.WorkOrder {
	t.Helper()
	wo, err := locate.ReconstructWorkOrder(locate.WorkOrderState{
		ID: id.NewWorkOrderID(),
		Details: locate.Details{
			WorkOrderNumber: number,
			PriorityName:    "NORMAL",
			CustomerName:    "Customer " + number,
		},
		Type: vo.OrderTypeStandard,
	})
	require.NoError(t, err)
	wo.Refresh(testNow)
	return wo
}

// seedSnapshot stores a new snapshot holding orders.
func seedSnapshot(t *testing.T, repo *mockSnapshotRepository, orders ...*locate.WorkOrder) *locate.Snapshot {
	t.Helper()
	s := locate.NewSnapshot(locate.SnapshotParams{DispatchDate: "2024-05-13"}, orders, testNow)
	require.NoError(t, repo.Create(context.Background(), s))
	return s
}
