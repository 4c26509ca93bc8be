package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/phenrril/importador/internal/domain"
	"github.com/phenrril/importador/internal/normalize"
)

// Fixed 12-column layout of the import spreadsheet (0-based slice index;
// row 1 of the sheet is the header).
const (
	colCustomerID = iota
	colTaxID
	colLegalName
	colTradeName
	colEmail
	colPhone
	colStreet
	colAddressKind
	colSaleID
	colSaleDate
	colTotal
	colPaymentMethod
	columnCount
)

var columnNames = [columnCount]string{
	"ID Cliente", "CPF/CNPJ", "Nome/Razão Social", "Nome Fantasia", "Email",
	"Telefone", "Logradouro", "Tipo Endereço", "ID Venda", "Data Venda",
	"Valor Total", "Forma Pagamento",
}

// FieldError describes a single rejected cell.
type FieldError struct {
	Column string
	Value  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("campo %s, valor '%s': %s", e.Column, e.Value, e.Reason)
}

// ValidatedRow is one spreadsheet row with every cell cleaned and typed. A
// row is either fully valid or fully rejected; there is no partial trust.
type ValidatedRow struct {
	CustomerID  int
	TaxID       string
	LegalName   string
	TradeName   string
	Email       string
	Phone       string
	Street      string
	AddressKind domain.AddressKind
	SaleID      int
	SaleDate    time.Time
	Total       decimal.Decimal
	Payment     domain.PaymentMethod
}

// ValidateRow checks all twelve cells of a row and collects every violation.
// The two load-bearing keys are the exception: a customer id that does not
// parse aborts immediately, and a sale id that does not parse aborts after
// the customer columns were checked.
func ValidateRow(cells []string) (ValidatedRow, []FieldError) {
	var row ValidatedRow
	var errs []FieldError

	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}
	fail := func(col int, value, reason string) {
		errs = append(errs, FieldError{Column: columnNames[col], Value: value, Reason: reason})
	}

	rawID := cell(colCustomerID)
	id, err := strconv.Atoi(rawID)
	if err != nil {
		fail(colCustomerID, rawID, "ID Cliente deve ser um número válido")
		return row, errs
	}
	row.CustomerID = id

	rawTax := cell(colTaxID)
	tax, err := normalize.TaxID(rawTax)
	switch {
	case err != nil:
		fail(colTaxID, rawTax, err.Error())
	case tax == "":
		fail(colTaxID, rawTax, "CPF/CNPJ é obrigatório")
	}
	row.TaxID = tax

	row.LegalName = cell(colLegalName)
	if row.LegalName == "" {
		fail(colLegalName, "", "Nome/Razão Social é obrigatório")
	}

	row.TradeName = cell(colTradeName)

	row.Email = cell(colEmail)
	if row.Email == "" {
		fail(colEmail, "", "Email é obrigatório")
	}

	rawPhone := cell(colPhone)
	phone, err := normalize.Phone(rawPhone)
	switch {
	case err != nil:
		fail(colPhone, rawPhone, err.Error())
	case phone == "":
		fail(colPhone, rawPhone, "Telefone é obrigatório")
	}
	row.Phone = phone

	// Street is optional; the address kind only matters when a street was
	// actually supplied.
	row.Street = cell(colStreet)
	if row.Street != "" {
		rawKind := cell(colAddressKind)
		kind, err := normalize.ParseAddressKind(rawKind)
		if err != nil {
			fail(colAddressKind, rawKind, err.Error())
		}
		row.AddressKind = kind
	}

	rawSale := cell(colSaleID)
	saleID, err := strconv.Atoi(rawSale)
	if err != nil {
		fail(colSaleID, rawSale, "ID Venda deve ser um número válido")
		return row, errs
	}
	row.SaleID = saleID

	rawDate := cell(colSaleDate)
	date, err := normalize.ParseFlexibleDate(rawDate)
	if err != nil {
		fail(colSaleDate, rawDate, "Data da venda deve ser uma data válida")
	}
	row.SaleDate = date

	rawTotal := cell(colTotal)
	total, err := normalize.ParseFlexibleDecimal(rawTotal)
	if err != nil {
		fail(colTotal, rawTotal, "Valor Total deve ser um número válido")
	}
	row.Total = total

	rawPayment := cell(colPaymentMethod)
	payment, err := normalize.ParsePaymentMethod(rawPayment)
	if err != nil {
		fail(colPaymentMethod, rawPayment, err.Error())
	}
	row.Payment = payment

	return row, errs
}
