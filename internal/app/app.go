package app

import (
	"gorm.io/gorm"

	"github.com/phenrril/importador/internal/adapters/repo/postgres"
	"github.com/phenrril/importador/internal/domain"
	"github.com/phenrril/importador/internal/usecase"
)

type App struct {
	DB       *gorm.DB
	Store    domain.Store
	ImportUC *usecase.ImportUC
}

func NewApp(db *gorm.DB, sink domain.ReportSink) *App {
	store := postgres.NewStore(db)
	return &App{
		DB:       db,
		Store:    store,
		ImportUC: &usecase.ImportUC{Store: store, Report: sink},
	}
}

func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(&domain.Customer{}, &domain.Address{}, &domain.Sale{}); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_sales_customer_id ON sales(customer_id)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_addresses_customer_id ON addresses(customer_id)").Error

	return nil
}
