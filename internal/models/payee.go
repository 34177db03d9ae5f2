package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FlexString accepts either a JSON string or a JSON number. Spreadsheet
// exports and hand-written payloads disagree on how amounts are typed, so the
// import surface tolerates both.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	*f = FlexString(data)
	return nil
}

// PayeeInput is a raw favorecido row as typed by the user, before any
// validation. Produced by the import layer, consumed once by validation.
type PayeeInput struct {
	// Name is the payee's full name or company name
	Name string `json:"nome"`
	// TaxID is the payee's CPF (11 digits) or CNPJ (14 digits)
	TaxID string `json:"cpf_cnpj"`
	// BankCode is the compensation code of the payee's bank (e.g. "001", "237")
	BankCode string `json:"banco"`
	// Branch is the agency number, check digit included (e.g. "1234-3")
	Branch string `json:"agencia"`
	// Account is the account number, check digit included
	Account string `json:"conta"`
	// AccountType is CC/PP for Banco do Brasil payees, TD/PP for other banks
	AccountType string `json:"tipo_conta"`
	// Amount is the payment value as typed (accepts "1.234,56", "1234.56" or a number)
	Amount FlexString `json:"valor"`
	// Row is the originating spreadsheet row, kept for error reporting
	Row int `json:"linha,omitempty"`
}

// FieldError describes a single validation problem on a payee field.
// ExpectedValue/ActualValue are filled for check-digit mismatches only.
type FieldError struct {
	Field         string `json:"campo"`
	Message       string `json:"mensagem"`
	ExpectedValue string `json:"valor_esperado,omitempty"`
	ActualValue   string `json:"valor_informado,omitempty"`
}

// ValidatedPayee is a PayeeInput after a validation pass. It is never
// mutated; re-validation produces a fresh value.
type ValidatedPayee struct {
	PayeeInput
	// NormalizedBankCode is BankCode trimmed and left-padded to 3 digits
	NormalizedBankCode string `json:"banco_normalizado"`
	Valid              bool   `json:"valido"`
	// Errors lists every field problem found, in rule order
	Errors []FieldError `json:"erros,omitempty"`
}

// RemittanceTotals breaks the valid payee set down by institution. Recomputed
// from scratch on every aggregation, never updated incrementally.
type RemittanceTotals struct {
	BancoBrasilCount int             `json:"banco_brasil_quantidade"`
	BancoBrasilSum   decimal.Decimal `json:"banco_brasil_total"`
	OtherCount       int             `json:"demais_bancos_quantidade"`
	OtherSum         decimal.Decimal `json:"demais_bancos_total"`
	TotalCount       int             `json:"quantidade_total"`
	TotalSum         decimal.Decimal `json:"valor_total"`
}
