package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/remessapay/cnab-api/internal/cnab"
	"github.com/remessapay/cnab-api/internal/config"
	"github.com/remessapay/cnab-api/internal/importer"
	"github.com/remessapay/cnab-api/internal/models"
	"github.com/remessapay/cnab-api/internal/validator"
)

// RemessaService implements remittance parsing and favorecido validation
type RemessaService struct {
	config         config.RemessaConfig
	cache          CacheServiceInterface
	logger         *logrus.Logger
	requestCounter int64
	mu             sync.Mutex
}

// NewRemessaService creates a new remittance service
func NewRemessaService(cfg config.RemessaConfig, cache CacheServiceInterface, logger *logrus.Logger) RemessaServiceInterface {
	return &RemessaService{
		config: cfg,
		cache:  cache,
		logger: logger,
	}
}

// ParseFile decodes a CNAB240 buffer into its payment view. Results are
// cached by the SHA-256 of the file body: remittance files are immutable,
// so the same bytes always convert to the same result.
func (s *RemessaService) ParseFile(ctx context.Context, data []byte) (*cnab.ConversionResult, bool, error) {
	start := time.Now()

	s.mu.Lock()
	s.requestCounter++
	requestID := s.requestCounter
	s.mu.Unlock()

	hash := sha256.Sum256(data)
	cacheKey := "arquivo:" + hex.EncodeToString(hash[:])

	log := s.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"file_bytes": len(data),
	})
	log.Info("Starting remittance file parse")

	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var result cnab.ConversionResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			log.WithField("duration", time.Since(start)).Info("Remittance file found in cache")
			return &result, true, nil
		} else {
			log.WithError(err).Warn("Failed to unmarshal cached parse result")
		}
	}

	envelope, err := cnab.ParseFile(string(data))
	if err != nil {
		log.WithError(err).Warn("Remittance file rejected")
		return nil, false, err
	}

	result := cnab.ToPayments(envelope)

	if encoded, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(encoded)); err != nil {
			log.WithError(err).Warn("Failed to cache parse result")
		}
	}

	log.WithFields(logrus.Fields{
		"duration":  time.Since(start),
		"batches":   len(envelope.Batches),
		"payments":  result.TotalCount,
		"anomalies": len(result.Anomalies),
	}).Info("Remittance file parsed")

	return result, false, nil
}

// ValidateFavorecidos runs the rule engine over every row and partitions
// the batch. Validation is pure; this wrapper only adds logging.
func (s *RemessaService) ValidateFavorecidos(_ context.Context, rows []models.PayeeInput) *validator.Summary {
	start := time.Now()

	summary := validator.PartitionAndTotal(rows)

	s.logger.WithFields(logrus.Fields{
		"rows":     len(rows),
		"valid":    len(summary.Valid),
		"invalid":  len(summary.Invalid),
		"total":    summary.Totals.TotalSum,
		"duration": time.Since(start),
	}).Info("Favorecidos validated")

	return summary
}

// ImportFavorecidos reads the uploaded spreadsheet and validates its rows
func (s *RemessaService) ImportFavorecidos(ctx context.Context, data []byte) (*validator.Summary, error) {
	rows, err := importer.ReadPayees(data)
	if err != nil {
		s.logger.WithError(err).Warn("Favorecidos spreadsheet rejected")
		return nil, err
	}

	s.logger.WithField("rows", len(rows)).Info("Favorecidos spreadsheet imported")
	return s.ValidateFavorecidos(ctx, rows), nil
}

// Health returns service health status
func (s *RemessaService) Health() map[string]interface{} {
	s.mu.Lock()
	counter := s.requestCounter
	s.mu.Unlock()

	return map[string]interface{}{
		"status":         "healthy",
		"files_parsed":   counter,
		"max_file_bytes": s.config.MaxFileBytes,
	}
}
