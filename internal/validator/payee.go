// Package validator applies the bank-specific business rules that decide
// whether a favorecido row may enter an outgoing remittance.
package validator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/remessapay/cnab-api/internal/models"
	"github.com/remessapay/cnab-api/internal/utils"
)

// BancoBrasilCode is the compensation code of Banco do Brasil, the only
// institution whose branch/account check digits this system verifies
const BancoBrasilCode = "001"

// Account type codes accepted per institution. CC/PP for Banco do Brasil,
// TD/PP for every other bank: the asymmetry (TD instead of CC) is a
// deliberate business rule carried over from the remittance product, not a
// typo. Do not "fix" it without sign-off from the business owner.
var (
	accountTypesBB    = []string{"CC", "PP"}
	accountTypesOther = []string{"TD", "PP"}
)

// Validate checks one favorecido row against every rule and returns all the
// problems found, in rule order. An empty slice means the row is valid.
// Pure function: no I/O, no state, rows never affect each other.
func Validate(payee models.PayeeInput) []models.FieldError {
	var errors []models.FieldError

	if strings.TrimSpace(payee.Name) == "" {
		errors = append(errors, models.FieldError{
			Field:   "nome",
			Message: "nome do favorecido é obrigatório",
		})
	}

	errors = append(errors, validateTaxID(payee.TaxID)...)

	bankCode := strings.TrimSpace(payee.BankCode)
	if bankCode == "" {
		errors = append(errors, models.FieldError{
			Field:   "banco",
			Message: "código do banco é obrigatório",
		})
	} else if NormalizeBankCode(bankCode) == BancoBrasilCode {
		errors = append(errors, validateBancoBrasil(payee)...)
	} else {
		errors = append(errors, validateOtherBank(payee)...)
	}

	errors = append(errors, validateAmount(payee.Amount)...)

	return errors
}

// NormalizeBankCode trims the code and left-pads it to 3 digits with zeros,
// so "1" and "001" validate identically
func NormalizeBankCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) >= 3 {
		return trimmed
	}
	return strings.Repeat("0", 3-len(trimmed)) + trimmed
}

// validateTaxID requires a structurally and checksum-valid CPF or CNPJ.
// Format and checksum failures share one error kind at this layer.
func validateTaxID(taxID string) []models.FieldError {
	if strings.TrimSpace(taxID) == "" {
		return []models.FieldError{{
			Field:   "cpf_cnpj",
			Message: "CPF ou CNPJ é obrigatório",
		}}
	}

	if !utils.IsValidTaxID(taxID) {
		return []models.FieldError{{
			Field:       "cpf_cnpj",
			Message:     "CPF ou CNPJ inválido (11 ou 14 dígitos com dígitos verificadores corretos)",
			ActualValue: utils.CleanTaxID(taxID),
		}}
	}

	return nil
}

// validateBancoBrasil verifies branch and account check digits and the
// CC/PP account types that apply to bank 001
func validateBancoBrasil(payee models.PayeeInput) []models.FieldError {
	var errors []models.FieldError

	if strings.TrimSpace(payee.Branch) == "" {
		errors = append(errors, models.FieldError{
			Field:   "agencia",
			Message: "agência é obrigatória",
		})
	} else if result := utils.ValidateBranchCheckDigit(payee.Branch); !result.Valid {
		errors = append(errors, models.FieldError{
			Field:         "agencia",
			Message:       "dígito verificador da agência inválido",
			ExpectedValue: result.ExpectedDigit,
			ActualValue:   result.ActualDigit,
		})
	}

	if strings.TrimSpace(payee.Account) == "" {
		errors = append(errors, models.FieldError{
			Field:   "conta",
			Message: "conta é obrigatória",
		})
	} else if result := utils.ValidateAccountCheckDigit(payee.Account); !result.Valid {
		errors = append(errors, models.FieldError{
			Field:         "conta",
			Message:       "dígito verificador da conta inválido",
			ExpectedValue: result.ExpectedDigit,
			ActualValue:   result.ActualDigit,
		})
	}

	errors = append(errors, validateAccountType(payee.AccountType, accountTypesBB)...)

	return errors
}

// validateOtherBank requires non-blank branch and account only; other
// institutions' check-digit algorithms are not verified by this system
func validateOtherBank(payee models.PayeeInput) []models.FieldError {
	var errors []models.FieldError

	if strings.TrimSpace(payee.Branch) == "" {
		errors = append(errors, models.FieldError{
			Field:   "agencia",
			Message: "agência é obrigatória",
		})
	}

	if strings.TrimSpace(payee.Account) == "" {
		errors = append(errors, models.FieldError{
			Field:   "conta",
			Message: "conta é obrigatória",
		})
	}

	errors = append(errors, validateAccountType(payee.AccountType, accountTypesOther)...)

	return errors
}

func validateAccountType(accountType string, accepted []string) []models.FieldError {
	normalized := strings.ToUpper(strings.TrimSpace(accountType))
	for _, code := range accepted {
		if normalized == code {
			return nil
		}
	}

	return []models.FieldError{{
		Field:         "tipo_conta",
		Message:       "tipo de conta deve ser " + strings.Join(accepted, " ou "),
		ExpectedValue: strings.Join(accepted, "/"),
		ActualValue:   accountType,
	}}
}

// validateAmount parses the payment value and requires it to be > 0
func validateAmount(raw models.FlexString) []models.FieldError {
	value := strings.TrimSpace(string(raw))
	if value == "" {
		return []models.FieldError{{
			Field:   "valor",
			Message: "valor é obrigatório",
		}}
	}

	amount, err := ParseAmount(value)
	if err != nil {
		return []models.FieldError{{
			Field:       "valor",
			Message:     "valor não é um número válido",
			ActualValue: value,
		}}
	}

	if !amount.IsPositive() {
		return []models.FieldError{{
			Field:       "valor",
			Message:     "valor deve ser maior que zero",
			ActualValue: value,
		}}
	}

	return nil
}

// ParseAmount accepts the separators users actually type: "1.234,56"
// (pt-BR), "1,234.56" (en), "1234.56" and "1234,56" all parse to the same
// decimal. The last separator present is taken as the decimal mark.
func ParseAmount(raw string) (decimal.Decimal, error) {
	value := strings.TrimSpace(raw)

	lastComma := strings.LastIndex(value, ",")
	lastDot := strings.LastIndex(value, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// pt-BR: dots group thousands, comma marks decimals
			value = strings.ReplaceAll(value, ".", "")
			value = strings.Replace(value, ",", ".", 1)
		} else {
			value = strings.ReplaceAll(value, ",", "")
		}
	case lastComma >= 0:
		value = strings.Replace(value, ",", ".", 1)
	}

	return decimal.NewFromString(value)
}
