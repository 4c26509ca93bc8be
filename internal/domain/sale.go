package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentPix      PaymentMethod = "pix"
	PaymentBoleto   PaymentMethod = "boleto"
	PaymentCash     PaymentMethod = "cash"
)

// Sale id is globally unique and supplied by the spreadsheet. The address
// always belongs to the same customer as the sale.
type Sale struct {
	ID            int             `gorm:"primaryKey"`
	Date          time.Time       `gorm:"not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2)"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);index"`
	CustomerID    int             `gorm:"index;not null"`
	AddressID     uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt     time.Time
}
