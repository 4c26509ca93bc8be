package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer identity comes from the spreadsheet, not the database. Once
// imported a customer is never updated or deleted by this pipeline.
type Customer struct {
	ID        int    `gorm:"primaryKey"`
	TaxID     string `gorm:"size:14;uniqueIndex"`
	LegalName string `gorm:"size:140;not null"`
	TradeName string `gorm:"size:140"`
	Email     string `gorm:"size:140;uniqueIndex"`
	Phone     string `gorm:"size:20"`
	Addresses []Address
	CreatedAt time.Time
}

type AddressKind string

const (
	AddressDelivery AddressKind = "delivery"
	AddressBilling  AddressKind = "billing"
)

// DefaultStreet is the sentinel used when a row carries no street and the
// customer has no address yet.
const DefaultStreet = "Endereço não informado"

type Address struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CustomerID int         `gorm:"index;not null"`
	Kind       AddressKind `gorm:"type:varchar(10)"`
	Street     string      `gorm:"size:255;not null"`
	CreatedAt  time.Time
}
