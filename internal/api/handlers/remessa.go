package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remessapay/cnab-api/internal/cnab"
	"github.com/remessapay/cnab-api/internal/config"
	"github.com/remessapay/cnab-api/internal/models"
	"github.com/remessapay/cnab-api/internal/services"
	"github.com/sirupsen/logrus"
)

// RemessaHandler handles CNAB240 remittance file requests
type RemessaHandler struct {
	remessaService services.RemessaServiceInterface
	config         *config.Config
	logger         *logrus.Logger
}

// NewRemessaHandler creates a new remittance handler
func NewRemessaHandler(remessaService services.RemessaServiceInterface, cfg *config.Config, logger *logrus.Logger) *RemessaHandler {
	return &RemessaHandler{
		remessaService: remessaService,
		config:         cfg,
		logger:         logger,
	}
}

// ParseFile handles CNAB240 remittance file parsing.
// The file comes either as a multipart field named "arquivo" or as the raw
// request body.
func (h *RemessaHandler) ParseFile(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")

	data, err := h.readFile(c)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to read remittance file from request")

		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid request",
			Message:   "Unable to read the remittance file from the request",
			Code:      models.ErrorCodeInvalidRequest,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	if int64(len(data)) > h.config.Remessa.MaxFileBytes {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"file_bytes": len(data),
			"max_bytes":  h.config.Remessa.MaxFileBytes,
		}).Warn("Remittance file exceeds size limit")

		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Error:     "File too large",
			Message:   "The remittance file exceeds the maximum allowed size",
			Code:      models.ErrorCodeFileTooLarge,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"file_bytes": len(data),
	}).Info("Processing remittance file")

	result, cached, err := h.remessaService.ParseFile(c.Request.Context(), data)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"duration":   time.Since(start),
		}).Error("Failed to parse remittance file")

		var structural *cnab.StructuralError
		if errors.As(err, &structural) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "Invalid CNAB240 file",
				Message:   structural.Error(),
				Code:      models.ErrorCodeInvalidFile,
				Timestamp: time.Now(),
				Path:      c.Request.URL.Path,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Internal server error",
			Message:   "An unexpected error occurred while parsing the file",
			Code:      models.ErrorCodeInternalError,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	duration := time.Since(start)
	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"payments":   result.TotalCount,
		"anomalies":  len(result.Anomalies),
		"duration":   duration,
		"cache":      cached,
	}).Info("Remittance file parsed successfully")

	if cached {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}

	c.JSON(http.StatusOK, result)
}

// readFile extracts the remittance file bytes from the request
func (h *RemessaHandler) readFile(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("arquivo"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, h.config.Remessa.MaxFileBytes+1))
	}

	return io.ReadAll(io.LimitReader(c.Request.Body, h.config.Remessa.MaxFileBytes+1))
}
