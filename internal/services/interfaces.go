package services

import (
	"context"

	"github.com/remessapay/cnab-api/internal/cnab"
	"github.com/remessapay/cnab-api/internal/models"
	"github.com/remessapay/cnab-api/internal/validator"
)

// RemessaServiceInterface defines the interface for the remittance service
type RemessaServiceInterface interface {
	// ParseFile parses a CNAB240 buffer into its semantic payment view.
	// The bool reports whether the result came from cache.
	ParseFile(ctx context.Context, data []byte) (*cnab.ConversionResult, bool, error)

	// ValidateFavorecidos validates payee rows and partitions them
	ValidateFavorecidos(ctx context.Context, rows []models.PayeeInput) *validator.Summary

	// ImportFavorecidos reads an XLSX buffer and validates its rows
	ImportFavorecidos(ctx context.Context, data []byte) (*validator.Summary, error)

	// Health returns service health status
	Health() map[string]interface{}
}

// CacheServiceInterface defines the interface for cache service
type CacheServiceInterface interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value string) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear clears all cache entries under the service prefix
	Clear(ctx context.Context) error

	// GetStats returns cache statistics
	GetStats(ctx context.Context) (map[string]interface{}, error)

	// Health returns cache service health status
	Health() map[string]interface{}
}
