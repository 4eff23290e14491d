package locate

import "context"

// SnapshotRepository stores snapshots with their embedded work orders.
// Lookups by work order are linear scans over every snapshot.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *Snapshot) error
	// Update overwrites the whole snapshot; the last writer wins.
	Update(ctx context.Context, snapshot *Snapshot) error
	GetByID(ctx context.Context, id uint) (*Snapshot, error)
	// List returns every snapshot, newest first.
	List(ctx context.Context) ([]*Snapshot, error)
	FindByWorkOrderID(ctx context.Context, workOrderID string) (*Snapshot, error)
}
