package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/remessapay/cnab-api/internal/config"
	"github.com/remessapay/cnab-api/internal/models"
	"github.com/remessapay/cnab-api/internal/services"
	"github.com/remessapay/cnab-api/internal/validator"
	"github.com/sirupsen/logrus"
)

// FavorecidoHandler handles payee validation requests
type FavorecidoHandler struct {
	remessaService services.RemessaServiceInterface
	config         *config.Config
	logger         *logrus.Logger
}

// NewFavorecidoHandler creates a new payee handler
func NewFavorecidoHandler(remessaService services.RemessaServiceInterface, cfg *config.Config, logger *logrus.Logger) *FavorecidoHandler {
	return &FavorecidoHandler{
		remessaService: remessaService,
		config:         cfg,
		logger:         logger,
	}
}

// Validate handles JSON payee batch validation
func (h *FavorecidoHandler) Validate(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")

	var request models.ValidationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid validation request format")

		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid request format",
			Message:   err.Error(),
			Code:      models.ErrorCodeInvalidRequest,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	if len(request.Favorecidos) > h.config.Remessa.MaxBatchRows {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"rows":       len(request.Favorecidos),
			"max_rows":   h.config.Remessa.MaxBatchRows,
		}).Warn("Validation batch exceeds row limit")

		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Error:     "Batch too large",
			Message:   "The batch exceeds the maximum number of rows",
			Code:      models.ErrorCodeFileTooLarge,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"rows":       len(request.Favorecidos),
	}).Info("Processing payee validation")

	summary := h.remessaService.ValidateFavorecidos(c.Request.Context(), request.Favorecidos)

	h.respond(c, requestID, summary, start)
}

// Import handles XLSX payee imports.
// The spreadsheet comes as a multipart field named "arquivo".
func (h *FavorecidoHandler) Import(c *gin.Context) {
	start := time.Now()
	requestID := c.GetString("request_id")

	file, err := c.FormFile("arquivo")
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Missing spreadsheet in import request")

		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid request",
			Message:   "A spreadsheet file is required in the 'arquivo' field",
			Code:      models.ErrorCodeInvalidRequest,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	if file.Size > h.config.Remessa.MaxFileBytes {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Error:     "File too large",
			Message:   "The spreadsheet exceeds the maximum allowed size",
			Code:      models.ErrorCodeFileTooLarge,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Internal server error",
			Message:   "Unable to read the uploaded spreadsheet",
			Code:      models.ErrorCodeInternalError,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "Internal server error",
			Message:   "Unable to read the uploaded spreadsheet",
			Code:      models.ErrorCodeInternalError,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"file_name":  file.Filename,
		"file_bytes": len(data),
	}).Info("Processing payee import")

	summary, err := h.remessaService.ImportFavorecidos(c.Request.Context(), data)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"duration":   time.Since(start),
		}).Warn("Failed to read payee spreadsheet")

		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     "Invalid spreadsheet",
			Message:   "The uploaded file is not a readable XLSX spreadsheet",
			Code:      models.ErrorCodeInvalidFile,
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
		return
	}

	h.respond(c, requestID, summary, start)
}

// respond converts a validation summary into the response payload
func (h *FavorecidoHandler) respond(c *gin.Context, requestID string, summary *validator.Summary, start time.Time) {
	duration := time.Since(start)

	h.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"valid":      len(summary.Valid),
		"invalid":    len(summary.Invalid),
		"duration":   duration,
	}).Info("Payee validation completed")

	response := models.ValidationResponse{
		Valid:      summary.Valid,
		Invalid:    summary.Invalid,
		Totals:     summary.Totals,
		TotalRows:  len(summary.Valid) + len(summary.Invalid),
		ValidCount: len(summary.Valid),
		ErrorCount: len(summary.Invalid),
		DurationMs: duration.Milliseconds(),
		Timestamp:  time.Now(),
	}

	c.JSON(http.StatusOK, response)
}
