package cnab

import (
	"time"

	"github.com/shopspring/decimal"
)

// Segment type markers at offset [13,14) of detail records
const (
	segmentA = "A"
	segmentB = "B"
)

// ToPayments walks the envelope's batches and produces the semantic payment
// records. Detail lines are paired by their declared segment tag, not by
// position: an A opens a record and a B immediately after it fills the
// optional recipient block. Arrangements the Febraban layout forbids (A
// followed by another A, an orphan B, an unknown tag, an A closing the
// batch alone) are reported as anomalies while every decodable record is
// still emitted.
//
// TotalAmount is the sum of every payment value, recomputed on each call.
func ToPayments(envelope *FileEnvelope) *ConversionResult {
	result := &ConversionResult{
		Header:      decodeHeader(envelope.HeaderLine),
		TotalAmount: decimal.Zero,
	}

	for batchIndex, batch := range envelope.Batches {
		if batch.HeaderLine != "" && batch.TrailerLine == "" {
			result.Anomalies = append(result.Anomalies, Anomaly{
				Batch:  batchIndex + 1,
				Reason: "batch has no closing trailer before end of file",
			})
		}

		var open *PaymentRecord
		for segIndex, line := range batch.Segments {
			tag := ExtractField(line, 13, 14)
			switch tag {
			case segmentA:
				if open != nil {
					result.Anomalies = append(result.Anomalies, Anomaly{
						Batch:   batchIndex + 1,
						Segment: segIndex,
						Reason:  "segment A without a matching segment B",
					})
					result.Payments = append(result.Payments, *open)
				}
				record := decodeSegmentA(line)
				open = &record
			case segmentB:
				if open == nil {
					result.Anomalies = append(result.Anomalies, Anomaly{
						Batch:   batchIndex + 1,
						Segment: segIndex,
						Reason:  "segment B with no preceding segment A",
					})
					continue
				}
				recipient := decodeSegmentB(line)
				open.Recipient = &recipient
				result.Payments = append(result.Payments, *open)
				open = nil
			default:
				result.Anomalies = append(result.Anomalies, Anomaly{
					Batch:   batchIndex + 1,
					Segment: segIndex,
					Reason:  "unknown segment type " + tag,
				})
			}
		}

		// A still open at the end of the batch: record without an address
		if open != nil {
			result.Anomalies = append(result.Anomalies, Anomaly{
				Batch:   batchIndex + 1,
				Segment: len(batch.Segments) - 1,
				Reason:  "segment A without a matching segment B",
			})
			result.Payments = append(result.Payments, *open)
		}
	}

	result.TotalCount = len(result.Payments)
	for _, payment := range result.Payments {
		result.TotalAmount = result.TotalAmount.Add(payment.Amount)
	}

	return result
}

// decodeHeader reads the file header fields from their fixed offsets
func decodeHeader(line string) FileHeader {
	header := FileHeader{
		BankCode: ExtractField(line, 0, 3),
		FileType: ExtractField(line, 142, 143),
		Sequence: ExtractTrimmed(line, 157, 163),
	}

	date, err := DecodeDate(ExtractField(line, 143, 151))
	if err != nil || date == nil {
		return header
	}

	generated := *date
	if clock, err := DecodeTime(ExtractField(line, 151, 157)); err == nil {
		generated = time.Date(
			date.Year(), date.Month(), date.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC,
		)
	}
	header.GeneratedAt = &generated

	return header
}

// decodeSegmentA builds a payment record from a segment-A line. Decode
// failures on dates and amounts become issues on the record; the record
// itself always comes out.
func decodeSegmentA(line string) PaymentRecord {
	record := PaymentRecord{
		RecordType:     ExtractField(line, 7, 8),
		Segment:        ExtractField(line, 13, 14),
		MovementType:   ExtractField(line, 14, 15),
		MovementCode:   ExtractField(line, 15, 17),
		ClearingCode:   ExtractTrimmed(line, 17, 20),
		BankCode:       ExtractField(line, 20, 23),
		Branch:         ExtractTrimmed(line, 23, 28),
		BranchDigit:    ExtractTrimmed(line, 28, 29),
		Account:        ExtractTrimmed(line, 29, 41),
		AccountDigit:   ExtractTrimmed(line, 41, 42),
		Name:           ExtractTrimmed(line, 43, 73),
		DocumentNumber: ExtractTrimmed(line, 73, 93),
		CurrencyCode:   ExtractTrimmed(line, 101, 104),
		OurNumber:      ExtractTrimmed(line, 134, 154),
		Amount:         decimal.Zero,
		EffectiveValue: decimal.Zero,
	}

	record.ScheduledDate = decodeDateField(&record, "data_pagamento", ExtractField(line, 93, 101))
	record.Amount = decodeAmountField(&record, "valor_pagamento", ExtractField(line, 119, 134))
	record.EffectiveDate = decodeDateField(&record, "data_efetivacao", ExtractField(line, 154, 162))
	record.EffectiveValue = decodeAmountField(&record, "valor_efetivacao", ExtractField(line, 162, 177))

	return record
}

// decodeSegmentB extracts the recipient tax-ID and address block
func decodeSegmentB(line string) RecipientInfo {
	return RecipientInfo{
		TaxIDType:  ExtractField(line, 17, 18),
		TaxID:      ExtractTrimmed(line, 18, 32),
		Street:     ExtractTrimmed(line, 32, 62),
		Number:     ExtractTrimmed(line, 62, 67),
		Complement: ExtractTrimmed(line, 67, 82),
		District:   ExtractTrimmed(line, 82, 97),
		City:       ExtractTrimmed(line, 97, 117),
		ZipCode:    ExtractTrimmed(line, 117, 125),
		State:      ExtractTrimmed(line, 125, 127),
	}
}

func decodeDateField(record *PaymentRecord, field, raw string) *time.Time {
	date, err := DecodeDate(raw)
	if err != nil {
		record.Issues = append(record.Issues, FieldIssue{
			Field:   field,
			Value:   raw,
			Message: "expected DDMMYYYY or the 00000000 sentinel",
		})
		return nil
	}
	return date
}

func decodeAmountField(record *PaymentRecord, field, raw string) decimal.Decimal {
	amount, err := DecodeAmount(raw, 2)
	if err != nil {
		record.Issues = append(record.Issues, FieldIssue{
			Field:   field,
			Value:   raw,
			Message: "expected a zero-padded digit string",
		})
		return decimal.Zero
	}
	return amount
}
