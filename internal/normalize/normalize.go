// Package normalize limpa e converte os valores brutos das células da
// planilha: documentos (CPF/CNPJ), telefones, enumerações com sinônimos em
// português e datas/valores em formatos de várias culturas.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/phenrril/importador/internal/domain"
)

var (
	ErrInvalidFormat = errors.New("caracteres inválidos")
	ErrInvalidLength = errors.New("comprimento inválido")
	ErrUnknownValue  = errors.New("valor desconhecido")
	ErrInvalidDate   = errors.New("data inválida")
	ErrInvalidNumber = errors.New("número inválido")
)

// CleanDigits strips everything but decimal digits.
func CleanDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TaxID cleans a CPF/CNPJ. The raw value may only carry digits and the usual
// formatting characters (. - /); the cleaned result must be empty, 11 digits
// (CPF) or 14 digits (CNPJ).
func TaxID(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	for _, r := range raw {
		if r >= '0' && r <= '9' || r == '.' || r == '-' || r == '/' || unicode.IsSpace(r) {
			continue
		}
		return "", fmt.Errorf("%w: CPF/CNPJ %q aceita apenas dígitos e . - /", ErrInvalidFormat, raw)
	}
	digits := CleanDigits(raw)
	if n := len(digits); n != 0 && n != 11 && n != 14 {
		return "", fmt.Errorf("%w: CPF/CNPJ %q tem %d dígitos, esperado 11 (CPF) ou 14 (CNPJ)", ErrInvalidLength, raw, n)
	}
	return digits, nil
}

// Phone cleans a phone number. Formatting characters (+ - ( ) and spaces) are
// allowed in the raw value; the cleaned result must be empty or have at least
// 10 digits (country code permitted).
func Phone(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	for _, r := range raw {
		if r >= '0' && r <= '9' || r == '+' || r == '-' || r == '(' || r == ')' || unicode.IsSpace(r) {
			continue
		}
		return "", fmt.Errorf("%w: telefone %q aceita apenas dígitos e + - ( )", ErrInvalidFormat, raw)
	}
	digits := CleanDigits(raw)
	if len(digits) > 0 && len(digits) < 10 {
		return "", fmt.Errorf("%w: telefone %q tem %d dígitos, mínimo 10", ErrInvalidLength, raw, len(digits))
	}
	return digits, nil
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases, strips accents and removes whitespace so "Cartão" and
// "cartao" compare equal.
func fold(s string) string {
	out, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), "")
}

var paymentSynonyms = map[string]domain.PaymentMethod{
	"cartao":        domain.PaymentCard,
	"transferencia": domain.PaymentTransfer,
	"pix":           domain.PaymentPix,
	"boleto":        domain.PaymentBoleto,
	"dinheiro":      domain.PaymentCash,
}

var paymentNames = map[string]domain.PaymentMethod{
	"card":     domain.PaymentCard,
	"transfer": domain.PaymentTransfer,
	"pix":      domain.PaymentPix,
	"boleto":   domain.PaymentBoleto,
	"cash":     domain.PaymentCash,
}

// ParsePaymentMethod matches the Portuguese synonyms first, then the exact
// enumerant names.
func ParsePaymentMethod(text string) (domain.PaymentMethod, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: forma de pagamento vazia", ErrUnknownValue)
	}
	if m, ok := paymentSynonyms[fold(text)]; ok {
		return m, nil
	}
	if m, ok := paymentNames[strings.ToLower(strings.TrimSpace(text))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: forma de pagamento %q", ErrUnknownValue, text)
}

// "ambos" marca o endereço para entrega e cobrança; o importador resolve
// para entrega.
var kindSynonyms = map[string]domain.AddressKind{
	"entrega":  domain.AddressDelivery,
	"cobranca": domain.AddressBilling,
	"ambos":    domain.AddressDelivery,
	"both":     domain.AddressDelivery,
}

var kindNames = map[string]domain.AddressKind{
	"delivery": domain.AddressDelivery,
	"billing":  domain.AddressBilling,
}

func ParseAddressKind(text string) (domain.AddressKind, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: tipo de endereço vazio", ErrUnknownValue)
	}
	if k, ok := kindSynonyms[fold(text)]; ok {
		return k, nil
	}
	if k, ok := kindNames[strings.ToLower(strings.TrimSpace(text))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%w: tipo de endereço %q", ErrUnknownValue, text)
}

// excelEpoch is day zero of the 1900 date system (serial 1 = 1899-12-31).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxExcelSerial is 9999-12-31. Larger numbers are not serials; a compact
// digit date like "15032024" must fall through to the layout list.
const maxExcelSerial = 2958465

// dateLayouts is tried in order: Brazilian day-first layouts take priority
// over month-first ones, so "03/04/2024" reads as April 3rd.
var dateLayouts = []string{
	"02/01/2006", "2/1/2006",
	"02-01-2006", "2-1-2006",
	"2006-01-02", "2006/01/02",
	"01/02/2006", "1/2/2006",
	"02012006", "20060102",
}

// ParseFlexibleDate accepts a native date, an Excel serial number or a
// string. Strings are tried as a serial first, then against dateLayouts. The
// result is truncated to day granularity.
func ParseFlexibleDate(cell any) (time.Time, error) {
	switch v := cell.(type) {
	case time.Time:
		return truncateDay(v), nil
	case float64:
		return serialDate(v)
	case float32:
		return serialDate(float64(v))
	case int:
		return serialDate(float64(v))
	case int64:
		return serialDate(float64(v))
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			break
		}
		if serial, err := strconv.ParseFloat(text, 64); err == nil {
			if d, serr := serialDate(serial); serr == nil {
				return d, nil
			}
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return truncateDay(t), nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, cell)
}

func serialDate(serial float64) (time.Time, error) {
	if serial < 1 || serial > maxExcelSerial {
		return time.Time{}, fmt.Errorf("%w: série %v fora do intervalo do Excel", ErrInvalidDate, serial)
	}
	return truncateDay(excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))), nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var (
	currencyPrefix = regexp.MustCompile(`^(R\$|US\$|\$|€)\s*`)
	ptBRNumber     = regexp.MustCompile(`^-?(\d{1,3}(\.\d{3})+|\d+)(,\d+)?$`)
	plainNumber    = regexp.MustCompile(`^-?(\d{1,3}(,\d{3})+|\d+)(\.\d+)?$`)
)

// ParseFlexibleDecimal accepts native numbers or strings in pt-BR
// ("1.234,56") and invariant ("1,234.56") forms, tolerating a leading
// currency symbol. The pt-BR form is tried first, matching the priority the
// spreadsheet's origin uses.
func ParseFlexibleDecimal(cell any) (decimal.Decimal, error) {
	switch v := cell.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			break
		}
		text = currencyPrefix.ReplaceAllString(text, "")
		if ptBRNumber.MatchString(text) {
			plain := strings.ReplaceAll(text, ".", "")
			plain = strings.ReplaceAll(plain, ",", ".")
			if d, err := decimal.NewFromString(plain); err == nil {
				return d, nil
			}
		}
		if plainNumber.MatchString(text) {
			plain := strings.ReplaceAll(text, ",", "")
			if d, err := decimal.NewFromString(plain); err == nil {
				return d, nil
			}
		}
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrInvalidNumber, cell)
}
