package utils

import (
	"regexp"
	"strconv"
)

var nonDigits = regexp.MustCompile(`\D`)

// CleanTaxID removes all non-numeric characters from a CPF or CNPJ
func CleanTaxID(taxID string) string {
	return nonDigits.ReplaceAllString(taxID, "")
}

// FormatTaxID formats a cleaned tax ID with the usual separators
// (XXX.XXX.XXX-XX for CPF, XX.XXX.XXX/XXXX-XX for CNPJ)
func FormatTaxID(taxID string) string {
	cleaned := CleanTaxID(taxID)
	switch len(cleaned) {
	case 11:
		return cleaned[:3] + "." + cleaned[3:6] + "." + cleaned[6:9] + "-" + cleaned[9:11]
	case 14:
		return cleaned[:2] + "." + cleaned[2:5] + "." + cleaned[5:8] + "/" + cleaned[8:12] + "-" + cleaned[12:14]
	}
	return taxID // Return original if invalid length
}

// IsValidTaxID validates a CPF or CNPJ by length and check digits
func IsValidTaxID(taxID string) bool {
	cleaned := CleanTaxID(taxID)
	switch len(cleaned) {
	case 11:
		return IsValidCPF(cleaned)
	case 14:
		return IsValidCNPJ(cleaned)
	}
	return false
}

// IsValidCPF validates a CPF using the official algorithm
func IsValidCPF(cpf string) bool {
	cleaned := CleanTaxID(cpf)

	if len(cleaned) != 11 {
		return false
	}

	// Sequences like 000.000.000-00 pass the checksum but are not issued
	if isAllSameDigit(cleaned) {
		return false
	}

	digits, ok := toDigits(cleaned)
	if !ok {
		return false
	}

	if !isValidCheckDigit(digits[:9], digits[9], []int{10, 9, 8, 7, 6, 5, 4, 3, 2}) {
		return false
	}

	return isValidCheckDigit(digits[:10], digits[10], []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2})
}

// IsValidCNPJ validates a CNPJ using the official algorithm
func IsValidCNPJ(cnpj string) bool {
	cleaned := CleanTaxID(cnpj)

	if len(cleaned) != 14 {
		return false
	}

	if isAllSameDigit(cleaned) {
		return false
	}

	digits, ok := toDigits(cleaned)
	if !ok {
		return false
	}

	if !isValidCheckDigit(digits[:12], digits[12], []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) {
		return false
	}

	return isValidCheckDigit(digits[:13], digits[13], []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2})
}

// isAllSameDigit checks if all digits in the string are the same
func isAllSameDigit(s string) bool {
	if len(s) == 0 {
		return false
	}

	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// toDigits converts a numeric string to a slice of integers
func toDigits(s string) ([]int, bool) {
	digits := make([]int, len(s))
	for i, char := range s {
		digit, err := strconv.Atoi(string(char))
		if err != nil {
			return nil, false
		}
		digits[i] = digit
	}
	return digits, true
}

// isValidCheckDigit validates a check digit using the given weights
func isValidCheckDigit(digits []int, checkDigit int, weights []int) bool {
	sum := 0
	for i, digit := range digits {
		sum += digit * weights[i]
	}

	remainder := sum % 11
	expectedDigit := 0
	if remainder >= 2 {
		expectedDigit = 11 - remainder
	}

	return expectedDigit == checkDigit
}
