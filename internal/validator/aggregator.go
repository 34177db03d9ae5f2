package validator

import (
	"github.com/shopspring/decimal"

	"github.com/remessapay/cnab-api/internal/models"
)

// Summary is the outcome of validating a batch of favorecido rows: a stable
// partition into valid and invalid, plus the remittance totals computed from
// the valid set only. Only validated rows are ever counted toward a
// remittance total or included in an outgoing file.
type Summary struct {
	Valid   []models.ValidatedPayee
	Invalid []models.ValidatedPayee
	Totals  models.RemittanceTotals
}

// PartitionAndTotal validates every row independently (row order never
// affects another row's validity), partitions the rows preserving input
// order, and recomputes the per-institution totals from scratch.
func PartitionAndTotal(rows []models.PayeeInput) *Summary {
	summary := &Summary{
		Valid:   make([]models.ValidatedPayee, 0, len(rows)),
		Invalid: make([]models.ValidatedPayee, 0),
	}

	for _, row := range rows {
		validated := models.ValidatedPayee{
			PayeeInput:         row,
			NormalizedBankCode: NormalizeBankCode(row.BankCode),
			Errors:             Validate(row),
		}
		validated.Valid = len(validated.Errors) == 0

		if validated.Valid {
			summary.Valid = append(summary.Valid, validated)
		} else {
			summary.Invalid = append(summary.Invalid, validated)
		}
	}

	summary.Totals = computeTotals(summary.Valid)
	return summary
}

// computeTotals buckets the valid set by normalized bank code: 001 goes to
// the Banco do Brasil bucket, everything else to the other-institutions one
func computeTotals(valid []models.ValidatedPayee) models.RemittanceTotals {
	totals := models.RemittanceTotals{
		BancoBrasilSum: decimal.Zero,
		OtherSum:       decimal.Zero,
		TotalSum:       decimal.Zero,
	}

	for _, payee := range valid {
		// Rows in the valid set always parse; ParseAmount cannot fail here
		amount, err := ParseAmount(string(payee.Amount))
		if err != nil {
			continue
		}

		if payee.NormalizedBankCode == BancoBrasilCode {
			totals.BancoBrasilCount++
			totals.BancoBrasilSum = totals.BancoBrasilSum.Add(amount)
		} else {
			totals.OtherCount++
			totals.OtherSum = totals.OtherSum.Add(amount)
		}
	}

	totals.TotalCount = totals.BancoBrasilCount + totals.OtherCount
	totals.TotalSum = totals.BancoBrasilSum.Add(totals.OtherSum)
	return totals
}
