package validator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/remessapay/cnab-api/internal/models"
)

// validPayeeBB is a Banco do Brasil row that passes every rule: branch
// 1234-3 and account 123456-0 both carry correct check digits
func validPayeeBB() models.PayeeInput {
	return models.PayeeInput{
		Name:        "MARIA DA SILVA",
		TaxID:       "529.982.247-25",
		BankCode:    "001",
		Branch:      "12343",
		Account:     "1234560",
		AccountType: "CC",
		Amount:      "100.00",
	}
}

func validPayeeOther() models.PayeeInput {
	return models.PayeeInput{
		Name:        "JOAO PEREIRA",
		TaxID:       "11.222.333/0001-81",
		BankCode:    "237",
		Branch:      "1",
		Account:     "1",
		AccountType: "TD",
		Amount:      "250,00",
	}
}

func TestValidatePassesValidRows(t *testing.T) {
	for _, payee := range []models.PayeeInput{validPayeeBB(), validPayeeOther()} {
		if errs := Validate(payee); len(errs) != 0 {
			t.Errorf("Validate(%q) returned errors: %+v", payee.Name, errs)
		}
	}
}

func TestValidateRequiredFields(t *testing.T) {
	empty := models.PayeeInput{}
	errs := Validate(empty)

	wantFields := map[string]bool{
		"nome":     false,
		"cpf_cnpj": false,
		"banco":    false,
		"valor":    false,
	}
	for _, err := range errs {
		if _, ok := wantFields[err.Field]; ok {
			wantFields[err.Field] = true
		}
	}
	for field, seen := range wantFields {
		if !seen {
			t.Errorf("missing required-field error for %q, got %+v", field, errs)
		}
	}
}

func TestValidateBancoBrasilBadBranchDigit(t *testing.T) {
	payee := validPayeeBB()
	payee.Branch = "12341"

	errs := Validate(payee)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want exactly 1: %+v", len(errs), errs)
	}

	err := errs[0]
	if err.Field != "agencia" {
		t.Errorf("Field = %q, want agencia", err.Field)
	}
	if err.ExpectedValue != "3" {
		t.Errorf("ExpectedValue = %q, want 3", err.ExpectedValue)
	}
	if err.ActualValue != "1" {
		t.Errorf("ActualValue = %q, want 1", err.ActualValue)
	}
}

func TestValidateBancoBrasilBadAccountDigit(t *testing.T) {
	payee := validPayeeBB()
	payee.Account = "1234561"

	errs := Validate(payee)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want exactly 1: %+v", len(errs), errs)
	}
	if errs[0].Field != "conta" {
		t.Errorf("Field = %q, want conta", errs[0].Field)
	}
}

// Other institutions get no check-digit verification: a one-character
// branch and account are enough
func TestValidateOtherBankSkipsCheckDigits(t *testing.T) {
	payee := validPayeeOther()
	payee.AccountType = "PP"

	if errs := Validate(payee); len(errs) != 0 {
		t.Errorf("unexpected errors: %+v", errs)
	}
}

// CC is only accepted for Banco do Brasil; other institutions use TD.
// The asymmetry is intentional.
func TestValidateAccountTypePerInstitution(t *testing.T) {
	bb := validPayeeBB()
	bb.AccountType = "TD"
	if errs := Validate(bb); len(errs) != 1 || errs[0].Field != "tipo_conta" {
		t.Errorf("TD for bank 001 should fail tipo_conta, got %+v", errs)
	}

	other := validPayeeOther()
	other.AccountType = "CC"
	if errs := Validate(other); len(errs) != 1 || errs[0].Field != "tipo_conta" {
		t.Errorf("CC for bank 237 should fail tipo_conta, got %+v", errs)
	}

	// PP works on both sides
	bb.AccountType = "PP"
	if errs := Validate(bb); len(errs) != 0 {
		t.Errorf("PP for bank 001 should pass, got %+v", errs)
	}
	other.AccountType = "pp" // case-insensitive
	if errs := Validate(other); len(errs) != 0 {
		t.Errorf("pp for bank 237 should pass, got %+v", errs)
	}
}

// "1" and "001" are the same institution and must validate identically
func TestValidateNormalizedBankCode(t *testing.T) {
	padded := validPayeeBB()
	padded.Branch = "12341" // bad check digit

	short := padded
	short.BankCode = "1"

	errsPadded := Validate(padded)
	errsShort := Validate(short)

	if len(errsPadded) != len(errsShort) {
		t.Fatalf("padded %d errors vs short %d errors", len(errsPadded), len(errsShort))
	}
	for i := range errsPadded {
		if errsPadded[i] != errsShort[i] {
			t.Errorf("error %d differs: %+v vs %+v", i, errsPadded[i], errsShort[i])
		}
	}
	if len(errsPadded) != 1 || errsPadded[0].Field != "agencia" {
		t.Errorf("both should fail on agencia, got %+v", errsPadded)
	}
}

func TestValidateInvalidTaxID(t *testing.T) {
	payee := validPayeeBB()
	payee.TaxID = "529.982.247-24"

	errs := Validate(payee)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want exactly 1: %+v", len(errs), errs)
	}
	if errs[0].Field != "cpf_cnpj" {
		t.Errorf("Field = %q, want cpf_cnpj", errs[0].Field)
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		amount string
		valid  bool
	}{
		{"100.00", true},
		{"1.234,56", true},
		{"1,234.56", true},
		{"0", false},
		{"0.00", false},
		{"-10", false},
		{"abc", false},
		{"", false},
	}

	for _, tt := range tests {
		payee := validPayeeBB()
		payee.Amount = models.FlexString(tt.amount)

		errs := Validate(payee)
		if tt.valid && len(errs) != 0 {
			t.Errorf("Amount %q should pass, got %+v", tt.amount, errs)
		}
		if !tt.valid && len(errs) == 0 {
			t.Errorf("Amount %q should fail", tt.amount)
		}
	}
}

func TestNormalizeBankCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1", "001"},
		{"01", "001"},
		{"001", "001"},
		{"237", "237"},
		{" 33 ", "033"},
	}

	for _, tt := range tests {
		if got := NormalizeBankCode(tt.input); got != tt.expected {
			t.Errorf("NormalizeBankCode(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1234.56", "1234.56"},
		{"1234,56", "1234.56"},
		{"1.234,56", "1234.56"},
		{"1,234.56", "1234.56"},
		{"1.234.567,89", "1234567.89"},
		{"100", "100"},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if err != nil {
			t.Errorf("ParseAmount(%q) error: %v", tt.input, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.expected)) {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}

	if _, err := ParseAmount("not a number"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}
