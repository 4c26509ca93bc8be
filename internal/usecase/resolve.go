package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/importador/internal/domain"
)

// resolveRow finds or stages the row's customer and address and reports
// whether the sale id is already taken. Nothing is flushed here: when the
// sale turns out to be a duplicate the staged customer and address are
// discarded with the transaction instead of leaking into the store.
func resolveRow(tx domain.Tx, row ValidatedRow) (*domain.Customer, *domain.Address, bool, error) {
	cust, err := tx.FindCustomer(row.CustomerID)
	if errors.Is(err, domain.ErrNotFound) {
		cust = &domain.Customer{
			ID:        row.CustomerID,
			TaxID:     row.TaxID,
			LegalName: row.LegalName,
			TradeName: row.TradeName,
			Email:     row.Email,
			Phone:     row.Phone,
			CreatedAt: time.Now(),
		}
		tx.StageCustomer(cust)
	} else if err != nil {
		return nil, nil, false, err
	}

	addr := resolveAddress(tx, cust, row)

	// Committed sales only: a duplicate means the whole row is discarded.
	if _, err := tx.FindSale(row.SaleID); err == nil {
		return cust, addr, true, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, false, err
	}
	return cust, addr, false, nil
}

// resolveAddress applies the dedup rules: reuse a street match
// (case-insensitive, trimmed) within the customer, fall back to the
// customer's first address when no street was supplied, and create the
// sentinel delivery address when there is nothing to fall back to.
func resolveAddress(tx domain.Tx, cust *domain.Customer, row ValidatedRow) *domain.Address {
	street := strings.TrimSpace(row.Street)
	if street == "" {
		if len(cust.Addresses) > 0 {
			return &cust.Addresses[0]
		}
		return stageAddress(tx, cust, domain.AddressDelivery, domain.DefaultStreet)
	}
	for i := range cust.Addresses {
		if strings.EqualFold(strings.TrimSpace(cust.Addresses[i].Street), street) {
			return &cust.Addresses[i]
		}
	}
	return stageAddress(tx, cust, row.AddressKind, street)
}

func stageAddress(tx domain.Tx, cust *domain.Customer, kind domain.AddressKind, street string) *domain.Address {
	addr := &domain.Address{
		ID:         uuid.New(),
		CustomerID: cust.ID,
		Kind:       kind,
		Street:     street,
		CreatedAt:  time.Now(),
	}
	tx.StageAddress(addr)
	cust.Addresses = append(cust.Addresses, *addr)
	return addr
}
