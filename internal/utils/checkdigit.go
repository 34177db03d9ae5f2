package utils

import (
	"strconv"
	"strings"
)

// CheckDigitResult is the outcome of verifying a branch or account number.
// ExpectedDigit and ActualDigit are filled whenever both could be determined,
// so callers can show the user which digit the bank expects.
type CheckDigitResult struct {
	Valid         bool
	ExpectedDigit string
	ActualDigit   string
}

// ValidateBranchCheckDigit verifies a Banco do Brasil agency number. The
// value must carry its check digit as the last character ("1234-3" and
// "12343" are equivalent).
func ValidateBranchCheckDigit(branch string) CheckDigitResult {
	return validateMod11(branch)
}

// ValidateAccountCheckDigit verifies a Banco do Brasil account number, check
// digit included. Accounts of any length are accepted; the weights scale
// with the number of digits.
func ValidateAccountCheckDigit(account string) CheckDigitResult {
	return validateMod11(account)
}

// validateMod11 runs the Banco do Brasil weighted modulus-11 verification.
// Weights descend from len(body)+1 to 2, left to right; a computed digit of
// 10 maps to "X" and 11 maps to "0".
func validateMod11(value string) CheckDigitResult {
	cleaned := cleanAccountNumber(value)
	if len(cleaned) < 2 {
		return CheckDigitResult{Valid: false}
	}

	body := cleaned[:len(cleaned)-1]
	actual := strings.ToUpper(cleaned[len(cleaned)-1:])

	for _, char := range body {
		if char < '0' || char > '9' {
			return CheckDigitResult{Valid: false, ActualDigit: actual}
		}
	}

	expected := mod11Digit(body)
	return CheckDigitResult{
		Valid:         expected == actual,
		ExpectedDigit: expected,
		ActualDigit:   actual,
	}
}

// mod11Digit computes the check digit for a numeric body
func mod11Digit(body string) string {
	weight := len(body) + 1
	sum := 0
	for _, char := range body {
		digit, _ := strconv.Atoi(string(char))
		sum += digit * weight
		weight--
	}

	remainder := sum % 11
	switch 11 - remainder {
	case 10:
		return "X"
	case 11:
		return "0"
	default:
		return strconv.Itoa(11 - remainder)
	}
}

// cleanAccountNumber strips separators, keeping digits and the X digit
func cleanAccountNumber(value string) string {
	var b strings.Builder
	for _, char := range strings.TrimSpace(value) {
		if (char >= '0' && char <= '9') || char == 'X' || char == 'x' {
			b.WriteRune(char)
		}
	}
	return b.String()
}
