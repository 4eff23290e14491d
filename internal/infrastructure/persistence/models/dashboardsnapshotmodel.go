package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"locates/internal/shared/constants"
)

// DashboardSnapshotModel stores one ingestion batch. Live and deleted work
// orders are embedded as JSON arrays.
type DashboardSnapshotModel struct {
	ID                uint   `gorm:"primarykey"`
	FilterStartDate   string `gorm:"size:20"`
	FilterEndDate     string `gorm:"size:20"`
	DispatchDate      string `gorm:"size:20;index"`
	Source            string `gorm:"size:100;not null"`
	WorkOrders        datatypes.JSON
	DeletedWorkOrders datatypes.JSON
	TotalWorkOrders   int       `gorm:"not null;default:0"`
	ScrapedAt         time.Time `gorm:"not null;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (DashboardSnapshotModel) TableName() string {
	return constants.TableDashboardSnapshots
}

func (m *DashboardSnapshotModel) BeforeCreate(tx *gorm.DB) error {
	if m.Source == "" {
		m.Source = "external-dashboard"
	}
	if len(m.WorkOrders) == 0 {
		m.WorkOrders = datatypes.JSON("[]")
	}
	if len(m.DeletedWorkOrders) == 0 {
		m.DeletedWorkOrders = datatypes.JSON("[]")
	}
	return nil
}
