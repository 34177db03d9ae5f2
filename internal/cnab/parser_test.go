package cnab

import (
	"errors"
	"strings"
	"testing"
)

// buildLine produces a 240-character record with values placed at fixed
// offsets, everything else blank
func buildLine(fields map[int]string) string {
	line := []byte(strings.Repeat(" ", LineLength))
	for start, value := range fields {
		copy(line[start:], value)
	}
	return string(line)
}

func fileHeaderLine() string {
	return buildLine(map[int]string{
		0:   "001",
		7:   "0",
		142: "1",
		143: "25122024",
		151: "143025",
		157: "000001",
	})
}

func fileTrailerLine() string {
	return buildLine(map[int]string{0: "001", 7: "9"})
}

func batchHeaderLine() string {
	return buildLine(map[int]string{0: "001", 7: "1"})
}

func batchTrailerLine() string {
	return buildLine(map[int]string{0: "001", 7: "5"})
}

func segmentLine(tag string, extra map[int]string) string {
	fields := map[int]string{0: "001", 7: "3", 13: tag}
	for start, value := range extra {
		fields[start] = value
	}
	return buildLine(fields)
}

func TestParseFileStructure(t *testing.T) {
	text := strings.Join([]string{
		fileHeaderLine(),
		batchHeaderLine(),
		segmentLine("A", nil),
		segmentLine("B", nil),
		batchTrailerLine(),
		fileTrailerLine(),
	}, "\n")

	envelope, err := ParseFile(text)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}

	if envelope.BankCode != "001" {
		t.Errorf("BankCode = %q, want %q", envelope.BankCode, "001")
	}
	if envelope.FileType != "1" {
		t.Errorf("FileType = %q, want %q", envelope.FileType, "1")
	}
	if len(envelope.Batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(envelope.Batches))
	}

	batch := envelope.Batches[0]
	if batch.HeaderLine == "" || batch.TrailerLine == "" {
		t.Error("batch must carry both header and trailer lines")
	}
	if len(batch.Segments) != 2 {
		t.Errorf("got %d segments, want 2", len(batch.Segments))
	}
}

func TestParseFileCRLFAndBlankLines(t *testing.T) {
	text := fileHeaderLine() + "\r\n" +
		batchHeaderLine() + "\r\n" +
		segmentLine("A", nil) + "\r\n" +
		"\r\n" +
		batchTrailerLine() + "\r\n" +
		fileTrailerLine() + "\r\n"

	envelope, err := ParseFile(text)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(envelope.Batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(envelope.Batches))
	}
	if len(envelope.Batches[0].Segments) != 1 {
		t.Errorf("got %d segments, want 1", len(envelope.Batches[0].Segments))
	}
}

func TestParseFileTooFewLines(t *testing.T) {
	text := fileHeaderLine() + "\n" + fileTrailerLine()

	_, err := ParseFile(text)
	if err == nil {
		t.Fatal("expected error for two-line file")
	}

	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("error is %T, want *StructuralError", err)
	}
}

func TestParseFileWrongLineLength(t *testing.T) {
	short := strings.Repeat("X", 239)
	text := strings.Join([]string{fileHeaderLine(), short, fileTrailerLine()}, "\n")

	_, err := ParseFile(text)
	if err == nil {
		t.Fatal("expected error for 239-character line")
	}

	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("error is %T, want *StructuralError", err)
	}
	if structural.Line != 2 {
		t.Errorf("Line = %d, want 2", structural.Line)
	}
	if !strings.Contains(structural.Error(), "239") {
		t.Errorf("error %q should mention the offending length", structural.Error())
	}
}

func TestParseFileMultipleBatches(t *testing.T) {
	text := strings.Join([]string{
		fileHeaderLine(),
		batchHeaderLine(),
		segmentLine("A", nil),
		batchTrailerLine(),
		batchHeaderLine(),
		segmentLine("A", nil),
		segmentLine("B", nil),
		batchTrailerLine(),
		fileTrailerLine(),
	}, "\n")

	envelope, err := ParseFile(text)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	if len(envelope.Batches) != 2 {
		t.Fatalf("got %d batches, want 2", len(envelope.Batches))
	}

	// Every interior line must land in exactly one batch
	total := 0
	for _, batch := range envelope.Batches {
		total += len(batch.Segments)
		if batch.HeaderLine != "" {
			total++
		}
		if batch.TrailerLine != "" {
			total++
		}
	}
	if total != 7 {
		t.Errorf("batches account for %d interior lines, want 7", total)
	}
}

func TestParseFileBatchWithoutTrailer(t *testing.T) {
	text := strings.Join([]string{
		fileHeaderLine(),
		batchHeaderLine(),
		segmentLine("A", nil),
		segmentLine("B", nil),
		fileTrailerLine(),
	}, "\n")

	envelope, err := ParseFile(text)
	if err != nil {
		t.Fatalf("open batch must not be a structural failure: %v", err)
	}
	if len(envelope.Batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(envelope.Batches))
	}
	if envelope.Batches[0].TrailerLine != "" {
		t.Error("batch trailer should be empty")
	}
	if len(envelope.Batches[0].Segments) != 2 {
		t.Errorf("got %d segments, want 2", len(envelope.Batches[0].Segments))
	}
}
