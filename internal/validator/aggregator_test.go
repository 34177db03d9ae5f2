package validator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/remessapay/cnab-api/internal/models"
)

func TestPartitionAndTotal(t *testing.T) {
	rows := []models.PayeeInput{
		validPayeeBB(),    // 100.00 to bank 001
		validPayeeOther(), // 250.00 to bank 237
		{Name: ""},        // invalid
	}

	summary := PartitionAndTotal(rows)

	if len(summary.Valid) != 2 {
		t.Fatalf("got %d valid rows, want 2", len(summary.Valid))
	}
	if len(summary.Invalid) != 1 {
		t.Fatalf("got %d invalid rows, want 1", len(summary.Invalid))
	}

	// Every input row lands in exactly one partition
	if len(summary.Valid)+len(summary.Invalid) != len(rows) {
		t.Error("partition does not cover the input")
	}

	totals := summary.Totals
	if totals.BancoBrasilCount != 1 {
		t.Errorf("BancoBrasilCount = %d, want 1", totals.BancoBrasilCount)
	}
	if !totals.BancoBrasilSum.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("BancoBrasilSum = %s, want 100.00", totals.BancoBrasilSum)
	}
	if totals.OtherCount != 1 {
		t.Errorf("OtherCount = %d, want 1", totals.OtherCount)
	}
	if !totals.OtherSum.Equal(decimal.RequireFromString("250.00")) {
		t.Errorf("OtherSum = %s, want 250.00", totals.OtherSum)
	}
	if totals.TotalCount != 2 {
		t.Errorf("TotalCount = %d, want 2", totals.TotalCount)
	}
	if !totals.TotalSum.Equal(totals.BancoBrasilSum.Add(totals.OtherSum)) {
		t.Errorf("TotalSum = %s, want the bucket sum", totals.TotalSum)
	}
}

// Invalid rows never contribute to any total
func TestPartitionAndTotalExcludesInvalid(t *testing.T) {
	bad := validPayeeBB()
	bad.Branch = "12341"

	summary := PartitionAndTotal([]models.PayeeInput{bad})

	if len(summary.Invalid) != 1 {
		t.Fatalf("got %d invalid rows, want 1", len(summary.Invalid))
	}
	if summary.Totals.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", summary.Totals.TotalCount)
	}
	if !summary.Totals.TotalSum.IsZero() {
		t.Errorf("TotalSum = %s, want 0", summary.Totals.TotalSum)
	}
}

func TestPartitionAndTotalPreservesOrder(t *testing.T) {
	first := validPayeeBB()
	first.Name = "PRIMEIRA"
	second := validPayeeOther()
	second.Name = "SEGUNDA"
	third := validPayeeBB()
	third.Name = "TERCEIRA"

	summary := PartitionAndTotal([]models.PayeeInput{first, second, third})

	names := []string{}
	for _, payee := range summary.Valid {
		names = append(names, payee.Name)
	}
	want := []string{"PRIMEIRA", "SEGUNDA", "TERCEIRA"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("valid order = %v, want %v", names, want)
		}
	}
}

func TestPartitionAndTotalEmptyInput(t *testing.T) {
	summary := PartitionAndTotal(nil)

	if len(summary.Valid) != 0 || len(summary.Invalid) != 0 {
		t.Error("empty input must produce empty partitions")
	}
	if !summary.Totals.TotalSum.IsZero() {
		t.Errorf("TotalSum = %s, want 0", summary.Totals.TotalSum)
	}
	if summary.Totals.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", summary.Totals.TotalCount)
	}
}

func TestPartitionAndTotalAnnotates(t *testing.T) {
	bad := validPayeeBB()
	bad.BankCode = "1"
	bad.TaxID = "111.111.111-11"

	summary := PartitionAndTotal([]models.PayeeInput{bad})

	row := summary.Invalid[0]
	if row.Valid {
		t.Error("Valid flag should be false")
	}
	if row.NormalizedBankCode != "001" {
		t.Errorf("NormalizedBankCode = %q, want 001", row.NormalizedBankCode)
	}
	if len(row.Errors) == 0 {
		t.Error("Errors should carry the validation failures")
	}
}
