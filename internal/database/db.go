package database

import (
	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM and migrates the
// schema.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Project{},
		&model.DirectoryItem{},
		&model.ItemMaterial{},
		&model.Quotation{},
		&model.Proforma{},
		&model.PurchaseOrder{},
		&model.Payment{},
		&model.StatusHistoryEntry{},
		&model.ProductionStage{},
		&model.Employee{},
		&model.WorkPlan{},
		&model.WorkPlanAssignment{},
		&model.ProductionRecap{},
		&model.QcResult{},
		&model.StockItem{},
		&model.SequenceCounter{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
