package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/importador/internal/domain"
)

func TestCleanDigits(t *testing.T) {
	assert.Equal(t, "12345678909", CleanDigits("123.456.789-09"))
	assert.Equal(t, "11912345678", CleanDigits("(11) 91234-5678"))
	assert.Equal(t, "", CleanDigits("abc"))
	assert.Equal(t, "", CleanDigits(""))
}

func TestTaxID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"cpf formatado", "123.456.789-09", "12345678909", nil},
		{"cnpj formatado", "12.345.678/0001-95", "12345678000195", nil},
		{"cpf sem máscara", "12345678909", "12345678909", nil},
		{"vazio", "  ", "", nil},
		{"letras", "123a456", "", ErrInvalidFormat},
		{"curto demais", "123", "", ErrInvalidLength},
		{"12 dígitos", "123456789012", "", ErrInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TaxID(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"celular formatado", "(11) 91234-5678", "11912345678", nil},
		{"com código do país", "+55 11 91234-5678", "5511912345678", nil},
		{"fixo", "1133334444", "1133334444", nil},
		{"vazio", "", "", nil},
		{"letras", "11 abcd-5678", "", ErrInvalidFormat},
		{"curto demais", "1234567", "", ErrInvalidLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Phone(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePaymentMethod(t *testing.T) {
	tests := []struct {
		in   string
		want domain.PaymentMethod
	}{
		{"Cartão", domain.PaymentCard},
		{"cartao", domain.PaymentCard},
		{"CARTAO", domain.PaymentCard},
		{"Pix", domain.PaymentPix},
		{"Transferência", domain.PaymentTransfer},
		{"transferencia", domain.PaymentTransfer},
		{"Boleto", domain.PaymentBoleto},
		{"DINHEIRO", domain.PaymentCash},
		{" dinheiro ", domain.PaymentCash},
		// exact enumerant names still work
		{"Card", domain.PaymentCard},
		{"cash", domain.PaymentCash},
		{"Transfer", domain.PaymentTransfer},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePaymentMethod(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParsePaymentMethod("cheque")
	assert.ErrorIs(t, err, ErrUnknownValue)
	_, err = ParsePaymentMethod("")
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestParseAddressKind(t *testing.T) {
	tests := []struct {
		in   string
		want domain.AddressKind
	}{
		{"Entrega", domain.AddressDelivery},
		{"entrega", domain.AddressDelivery},
		{"Cobrança", domain.AddressBilling},
		{"cobranca", domain.AddressBilling},
		{"Ambos", domain.AddressDelivery},
		{"both", domain.AddressDelivery},
		{"Delivery", domain.AddressDelivery},
		{"billing", domain.AddressBilling},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAddressKind(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseAddressKind("sede")
	assert.ErrorIs(t, err, ErrUnknownValue)
	_, err = ParseAddressKind("  ")
	assert.ErrorIs(t, err, ErrUnknownValue)
}

func TestParseFlexibleDate(t *testing.T) {
	march15 := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"dia primeiro", "15/03/2024", march15},
		{"dia primeiro sem zero", "15/3/2024", march15},
		{"com hífen", "15-03-2024", march15},
		{"iso", "2024-03-15", march15},
		{"mês primeiro", "03/15/2024", march15},
		{"compacto", "15032024", march15},
		{"serial em texto", "45366", march15},
		{"serial nativo", 45366.0, march15},
		{"serial inteiro", 45366, march15},
		{"data nativa", time.Date(2024, time.March, 15, 13, 45, 12, 0, time.UTC), march15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleDate(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}

	for _, in := range []any{"não é data", "", nil, "32/13/2024"} {
		_, err := ParseFlexibleDate(in)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %v", in)
	}
}

func TestParseFlexibleDateDayFirstPriority(t *testing.T) {
	// 03/04 is ambiguous; the Brazilian layout wins: April 3rd, not March 4th.
	got, err := ParseFlexibleDate("03/04/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.April, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestParseFlexibleDecimal(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"invariante", "199.90", "199.9"},
		{"pt-BR", "199,90", "199.9"},
		{"pt-BR com milhar", "1.234,56", "1234.56"},
		{"invariante com milhar", "1,234.56", "1234.56"},
		{"milhar pt-BR sem centavos", "1.234", "1234"},
		{"moeda", "R$ 199,90", "199.9"},
		{"moeda sem espaço", "R$199,90", "199.9"},
		{"negativo", "-42,50", "-42.5"},
		{"inteiro", "150", "150"},
		{"nativo float", 199.9, "199.9"},
		{"nativo int", 150, "150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleDecimal(tt.in)
			require.NoError(t, err)
			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}

	for _, in := range []any{"abc", "", nil, "12,34,56"} {
		_, err := ParseFlexibleDecimal(in)
		assert.ErrorIs(t, err, ErrInvalidNumber, "input %v", in)
	}
}
