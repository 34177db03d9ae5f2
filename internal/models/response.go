package models

import (
	"time"
)

// ErrorResponse is the standard error payload for every endpoint
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
}

// Standard error codes
const (
	ErrorCodeInvalidFile    = "ARQUIVO_INVALIDO"
	ErrorCodeFileTooLarge   = "ARQUIVO_MUITO_GRANDE"
	ErrorCodeInvalidRequest = "REQUISICAO_INVALIDA"
	ErrorCodeInternalError  = "ERRO_INTERNO"
	ErrorCodeRateLimit      = "LIMITE_EXCEDIDO"
)

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Services  map[string]ServiceInfo `json:"services"`
	Uptime    string                 `json:"uptime"`
}

// ServiceInfo describes the health of a single dependency
type ServiceInfo struct {
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
	LastCheck time.Time `json:"last_check"`
}

// ValidationRequest carries favorecido rows for the validate endpoint
type ValidationRequest struct {
	Favorecidos []PayeeInput `json:"favorecidos" binding:"required"`
}

// ValidationResponse is the result of validating a batch of favorecidos.
// Valid and Invalid together preserve the input order (stable partition).
type ValidationResponse struct {
	Valid      []ValidatedPayee `json:"validos"`
	Invalid    []ValidatedPayee `json:"invalidos"`
	Totals     RemittanceTotals `json:"totais"`
	TotalRows  int              `json:"total_linhas"`
	ValidCount int              `json:"quantidade_valida"`
	ErrorCount int              `json:"quantidade_invalida"`
	DurationMs int64            `json:"duracao_ms"`
	Timestamp  time.Time        `json:"timestamp"`
}
