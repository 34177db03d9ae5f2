package cnab

import (
	"strconv"
	"strings"
)

// ParseFile splits a raw CNAB240 buffer into its structural envelope:
// header line, ordered batches and trailer line. CRLF and LF endings are
// both accepted; blank lines are discarded before any check.
//
// The whole file is rejected with a StructuralError when fewer than three
// non-blank lines exist or when any line is not exactly 240 characters.
// Everything past those invariants is tolerated: a batch whose trailer never
// arrives is still emitted with the segments collected so far.
func ParseFile(text string) (*FileEnvelope, error) {
	lines := splitLines(text)

	// header + at least one payload line + trailer
	if len(lines) < 3 {
		return nil, &StructuralError{Reason: "file must have at least 3 records (header, payload, trailer)"}
	}

	for i, line := range lines {
		if len(line) != LineLength {
			return nil, &StructuralError{
				Line:   i + 1,
				Reason: "record must be exactly 240 characters, got " + strconv.Itoa(len(line)),
			}
		}
	}

	envelope := &FileEnvelope{
		HeaderLine:  lines[0],
		TrailerLine: lines[len(lines)-1],
		BankCode:    ExtractField(lines[0], 0, 3),
		FileType:    ExtractField(lines[0], 142, 143),
	}

	// Single linear pass over the interior lines. The role marker at [7,8)
	// drives the batch state: "1" opens, "5" closes, anything else is a
	// segment of the batch currently open.
	var current *Batch
	for _, line := range lines[1 : len(lines)-1] {
		switch ExtractField(line, 7, 8) {
		case roleBatchHeader:
			if current != nil {
				envelope.Batches = append(envelope.Batches, *current)
			}
			current = &Batch{HeaderLine: line}
		case roleBatchTrailer:
			if current == nil {
				current = &Batch{}
			}
			current.TrailerLine = line
			envelope.Batches = append(envelope.Batches, *current)
			current = nil
		default:
			if current == nil {
				current = &Batch{}
			}
			current.Segments = append(current.Segments, line)
		}
	}

	// Batch left open at end of interior lines: emit as-is. The converter
	// reports it as an anomaly; it is not a structural failure.
	if current != nil {
		envelope.Batches = append(envelope.Batches, *current)
	}

	return envelope, nil
}

// splitLines breaks the buffer on line endings and drops blank lines
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
