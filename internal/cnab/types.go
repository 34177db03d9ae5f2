// Package cnab decodes CNAB240 remittance files: the fixed-width codec, the
// file structure parser and the payment converter. Every line of a CNAB240
// file is exactly 240 characters; fields live at positions fixed by the
// Febraban layout, with no delimiters.
package cnab

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LineLength is the mandatory width of every CNAB240 record
const LineLength = 240

// Record-role markers found at offset [7,8) of every line
const (
	roleBatchHeader  = "1"
	roleBatchTrailer = "5"
)

// FileEnvelope is the structural view of a parsed file: raw lines grouped
// into header, ordered batches and trailer. Immutable after ParseFile.
type FileEnvelope struct {
	HeaderLine  string  `json:"-"`
	Batches     []Batch `json:"-"`
	TrailerLine string  `json:"-"`
	// BankCode is read from offsets [0,3) of the header line
	BankCode string `json:"banco"`
	// FileType is the remessa/retorno marker at offset [142,143) of the header
	FileType string `json:"tipo_arquivo"`
}

// Batch groups the lines between a batch header (role "1") and its trailer
// (role "5"). A batch cut short by end of file keeps whatever segments were
// collected and an empty TrailerLine.
type Batch struct {
	HeaderLine  string
	TrailerLine string
	Segments    []string
}

// FileHeader carries the decoded header fields of a remittance file
type FileHeader struct {
	BankCode    string     `json:"banco"`
	FileType    string     `json:"tipo_arquivo"`
	GeneratedAt *time.Time `json:"gerado_em,omitempty"`
	Sequence    string     `json:"sequencial"`
}

// RecipientInfo is the optional segment-B block of a payment: the payee's
// tax ID and address. Present only when a B line directly follows the A line.
type RecipientInfo struct {
	TaxIDType  string `json:"tipo_inscricao"`
	TaxID      string `json:"cpf_cnpj"`
	Street     string `json:"logradouro"`
	Number     string `json:"numero"`
	Complement string `json:"complemento"`
	District   string `json:"bairro"`
	City       string `json:"cidade"`
	ZipCode    string `json:"cep"`
	State      string `json:"uf"`
}

// FieldIssue records a field that could not be decoded. The payment record
// is still emitted; the issue travels with it instead of aborting the file.
type FieldIssue struct {
	Field   string `json:"campo"`
	Value   string `json:"valor"`
	Message string `json:"mensagem"`
}

// PaymentRecord is a normalized payment entry built from a segment-A line
// and, when present, its paired segment-B line. Never mutated after creation.
type PaymentRecord struct {
	RecordType   string `json:"tipo_registro"`
	Segment      string `json:"segmento"`
	MovementType string `json:"tipo_movimento"`
	MovementCode string `json:"codigo_movimento"`
	ClearingCode string `json:"camara"`

	BankCode     string `json:"banco"`
	Branch       string `json:"agencia"`
	BranchDigit  string `json:"agencia_dv"`
	Account      string `json:"conta"`
	AccountDigit string `json:"conta_dv"`

	Name           string          `json:"nome"`
	DocumentNumber string          `json:"numero_documento"`
	ScheduledDate  *time.Time      `json:"data_pagamento,omitempty"`
	CurrencyCode   string          `json:"moeda"`
	Amount         decimal.Decimal `json:"valor_pagamento"`
	OurNumber      string          `json:"nosso_numero"`
	EffectiveDate  *time.Time      `json:"data_efetivacao,omitempty"`
	EffectiveValue decimal.Decimal `json:"valor_efetivacao"`

	Recipient *RecipientInfo `json:"favorecido,omitempty"`
	Issues    []FieldIssue   `json:"ocorrencias,omitempty"`
}

// Anomaly reports a segment arrangement the converter tolerated but a human
// should review: an A without its B, an orphan B, an unknown segment tag or
// a batch missing its closing trailer.
type Anomaly struct {
	Batch   int    `json:"lote"`
	Segment int    `json:"posicao"`
	Reason  string `json:"motivo"`
}

// ConversionResult is the semantic view of a remittance file. TotalAmount is
// recomputed on every conversion, never cached.
type ConversionResult struct {
	Header      FileHeader      `json:"cabecalho"`
	Payments    []PaymentRecord `json:"pagamentos"`
	TotalCount  int             `json:"quantidade_total"`
	TotalAmount decimal.Decimal `json:"valor_total"`
	Anomalies   []Anomaly       `json:"anomalias,omitempty"`
}

// StructuralError means the file violates a whole-file invariant (line count
// or line width). The file is rejected outright, no partial result exists.
type StructuralError struct {
	Line   int
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid file structure at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid file structure: %s", e.Reason)
}

// FormatError means a positional field holds characters its type forbids,
// e.g. a non-digit inside an amount. Caught per field, never fatal.
type FormatError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s field %q: %s", e.Field, e.Value, e.Reason)
}
