package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/importador/internal/domain"
)

func validCells() []string {
	return []string{
		"1",               // ID Cliente
		"123.456.789-09",  // CPF/CNPJ
		"Acme",            // Nome/Razão Social
		"Acme Ltda",       // Nome Fantasia
		"a@x.com",         // Email
		"(11) 91234-5678", // Telefone
		"Rua A",           // Logradouro
		"Entrega",         // Tipo Endereço
		"100",             // ID Venda
		"15/03/2024",      // Data Venda
		"199.90",          // Valor Total
		"Pix",             // Forma Pagamento
	}
}

func TestValidateRowValid(t *testing.T) {
	row, errs := ValidateRow(validCells())
	require.Empty(t, errs)

	assert.Equal(t, 1, row.CustomerID)
	assert.Equal(t, "12345678909", row.TaxID)
	assert.Equal(t, "Acme", row.LegalName)
	assert.Equal(t, "Acme Ltda", row.TradeName)
	assert.Equal(t, "a@x.com", row.Email)
	assert.Equal(t, "11912345678", row.Phone)
	assert.Equal(t, "Rua A", row.Street)
	assert.Equal(t, domain.AddressDelivery, row.AddressKind)
	assert.Equal(t, 100, row.SaleID)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), row.SaleDate)
	assert.True(t, row.Total.Equal(decimal.RequireFromString("199.90")))
	assert.Equal(t, domain.PaymentPix, row.Payment)
}

func TestValidateRowBadCustomerIDAbortsImmediately(t *testing.T) {
	cells := validCells()
	cells[0] = "abc"
	cells[1] = "123" // also broken, but must not be reported
	cells[4] = ""

	_, errs := ValidateRow(cells)
	require.Len(t, errs, 1)
	assert.Equal(t, "ID Cliente", errs[0].Column)
	assert.Equal(t, "abc", errs[0].Value)
}

func TestValidateRowBadSaleIDAbortsAfterCustomerColumns(t *testing.T) {
	cells := validCells()
	cells[4] = ""  // email missing: reported
	cells[8] = "x" // sale id broken: reported, aborts
	cells[11] = "cheque"

	_, errs := ValidateRow(cells)
	require.Len(t, errs, 2)
	assert.Equal(t, "Email", errs[0].Column)
	assert.Equal(t, "ID Venda", errs[1].Column)
}

func TestValidateRowCollectsAllFieldErrors(t *testing.T) {
	cells := validCells()
	cells[1] = "123"   // tax id too short
	cells[4] = ""      // email missing
	cells[5] = "98765" // phone too short
	cells[10] = "caro" // total not a number
	cells[11] = "vale" // unknown payment

	_, errs := ValidateRow(cells)
	require.Len(t, errs, 5)

	cols := make([]string, len(errs))
	for i, e := range errs {
		cols[i] = e.Column
	}
	assert.Equal(t, []string{"CPF/CNPJ", "Email", "Telefone", "Valor Total", "Forma Pagamento"}, cols)
}

func TestValidateRowTaxIDLength(t *testing.T) {
	cells := validCells()
	cells[1] = "123"

	_, errs := ValidateRow(cells)
	require.Len(t, errs, 1)
	assert.Equal(t, "CPF/CNPJ", errs[0].Column)
	assert.Contains(t, errs[0].Reason, "comprimento inválido")
}

func TestValidateRowOptionalFields(t *testing.T) {
	cells := validCells()
	cells[3] = "" // trade name
	cells[6] = "" // street
	cells[7] = "" // kind irrelevant without street

	row, errs := ValidateRow(cells)
	require.Empty(t, errs)
	assert.Empty(t, row.TradeName)
	assert.Empty(t, row.Street)
}

func TestValidateRowKindRequiredWithStreet(t *testing.T) {
	cells := validCells()
	cells[7] = ""

	_, errs := ValidateRow(cells)
	require.Len(t, errs, 1)
	assert.Equal(t, "Tipo Endereço", errs[0].Column)
}

func TestValidateRowShortSlice(t *testing.T) {
	// Missing trailing cells behave like empty ones.
	_, errs := ValidateRow([]string{"1", "123.456.789-09", "Acme"})
	require.NotEmpty(t, errs)
	for _, e := range errs {
		assert.NotEqual(t, "ID Cliente", e.Column)
	}
}
