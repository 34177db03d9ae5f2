// Package importer reads the favorecidos spreadsheet users upload and turns
// its rows into raw payee inputs for validation.
package importer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/remessapay/cnab-api/internal/models"
)

// Expected column order of the favorecidos sheet. Matches the template the
// product hands out: Nome, CPF/CNPJ, Banco, Agência, Conta, Tipo, Valor.
const (
	colName = iota
	colTaxID
	colBankCode
	colBranch
	colAccount
	colAccountType
	colAmount
	columnCount
)

// ReadPayees parses an XLSX buffer into raw payee rows. The first row of the
// first sheet is treated as the header and skipped; fully blank rows are
// ignored. No validation happens here: rows come out exactly as typed, with
// their originating spreadsheet row number attached for error reporting.
func ReadPayees(data []byte) ([]models.PayeeInput, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in spreadsheet")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("spreadsheet must have a header row and at least one data row")
	}

	var payees []models.PayeeInput
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		payees = append(payees, models.PayeeInput{
			Name:        cell(row, colName),
			TaxID:       cell(row, colTaxID),
			BankCode:    cell(row, colBankCode),
			Branch:      cell(row, colBranch),
			Account:     cell(row, colAccount),
			AccountType: cell(row, colAccountType),
			Amount:      models.FlexString(cell(row, colAmount)),
			Row:         i + 2, // 1-based, past the header
		})
	}

	return payees, nil
}

// cell returns the trimmed value at the given column, tolerating short rows
// (excelize drops trailing empty cells)
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlankRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
