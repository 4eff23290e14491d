package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"locates/internal/domain/locate"
	"locates/internal/domain/shared/events"
	"locates/internal/shared/constants"
	"locates/internal/shared/errors"
	"locates/internal/shared/logger"
)

const (
	SweepLockKey = "locates:lock:sweep"
	SyncLockKey  = "locates:lock:sync"
)

// Actor is the person performing a mutation.
type Actor struct {
	Name  string
	Email string
}

// DisplayName falls back to the system actor for anonymous callers.
func (a Actor) DisplayName() string {
	if name := strings.TrimSpace(a.Name); name != "" {
		return name
	}
	return constants.SystemActor
}

// JobLocker guards work that must not run on two instances at once.
type JobLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), acquired bool, err error)
}

// TransactionRunner runs fn inside a single database transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func publish(publisher events.EventPublisher, log logger.Interface, evts ...events.DomainEvent) {
	if publisher == nil || len(evts) == 0 {
		return
	}
	if err := publisher.PublishAll(evts); err != nil {
		log.Warnw("failed to publish events", "count", len(evts), "error", err)
	}
}

// loadWorkOrder finds the snapshot holding a live work order.
func loadWorkOrder(ctx context.Context, repo locate.SnapshotRepository, workOrderID string) (*locate.Snapshot, *locate.WorkOrder, error) {
	snapshot, err := repo.FindByWorkOrderID(ctx, workOrderID)
	if err != nil {
		if stderrors.Is(err, locate.ErrWorkOrderNotFound) || stderrors.Is(err, locate.ErrSnapshotNotFound) {
			return nil, nil, errors.NewNotFoundError("work order not found", workOrderID)
		}
		return nil, nil, errors.NewUpstreamError("failed to load work order", err)
	}

	wo, ok := snapshot.FindWorkOrder(workOrderID)
	if !ok {
		return nil, nil, errors.NewNotFoundError("work order not found", workOrderID)
	}
	return snapshot, wo, nil
}

func loadSnapshot(ctx context.Context, repo locate.SnapshotRepository, snapshotID uint) (*locate.Snapshot, error) {
	snapshot, err := repo.GetByID(ctx, snapshotID)
	if err != nil {
		if stderrors.Is(err, locate.ErrSnapshotNotFound) {
			return nil, errors.NewNotFoundError("dashboard snapshot not found")
		}
		return nil, errors.NewUpstreamError("failed to load dashboard snapshot", err)
	}
	return snapshot, nil
}

func listSnapshots(ctx context.Context, repo locate.SnapshotRepository) ([]*locate.Snapshot, error) {
	snapshots, err := repo.List(ctx)
	if err != nil {
		return nil, errors.NewUpstreamError("failed to list dashboard snapshots", err)
	}
	return snapshots, nil
}

// findLiveByNumber returns the first live order with number, scanning
// snapshots in the order given.
func findLiveByNumber(snapshots []*locate.Snapshot, number string) (*locate.Snapshot, *locate.WorkOrder) {
	for _, s := range snapshots {
		if wo, ok := s.FindByNumber(number); ok {
			return s, wo
		}
	}
	return nil, nil
}

// liveIDs reports whether a work order id is live in any of the snapshots.
func liveIDs(snapshots []*locate.Snapshot) func(string) bool {
	return func(id string) bool {
		for _, s := range snapshots {
			if _, ok := s.FindWorkOrder(id); ok {
				return true
			}
		}
		return false
	}
}
