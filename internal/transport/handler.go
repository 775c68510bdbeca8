package transport

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-alpha-extractor/internal/config"
	apperrors "go-alpha-extractor/internal/errors"
	"go-alpha-extractor/internal/extractor"
	"go-alpha-extractor/internal/logger"
	"go-alpha-extractor/internal/service"
	"go-alpha-extractor/pkg/validation"
)

// ExtractionRequest is the JSON body for POST /extract. The two refs point
// at the same subject rendered over pure white and pure black.
type ExtractionRequest struct {
	WhiteURL  string   `json:"white_url" binding:"required,url"`
	BlackURL  string   `json:"black_url" binding:"required,url"`
	Threshold *float64 `json:"threshold,omitempty"`

	// Optional blob destination for the result PNG. Only honored when the
	// configured storage backend supports uploads.
	StoreContainer string `json:"store_container,omitempty"`
	StoreBlob      string `json:"store_blob,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the HTTP handler with all routes and middleware
func NewHandler(svc service.ExtractionService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.POST("/extract", extractAlpha(svc, cfg))

	return r
}

// extractAlpha handles one recovery request. With ?format=png the raw PNG
// bytes come back directly; the default JSON response carries the PNG
// base64-encoded next to the run statistics.
func extractAlpha(svc service.ExtractionService, cfg *config.Config) gin.HandlerFunc {
	refValidator := validation.NewRefValidator()

	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing alpha extraction request")

		var req ExtractionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		for _, ref := range []string{req.WhiteURL, req.BlackURL} {
			if err := refValidator.ValidateImageRef(ref); err != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"url": ref,
					"ip":  c.ClientIP(),
				}).Error("Invalid image URL")
				respondError(c, apperrors.GetStatusCode(err), "invalid image URL", err)
				return
			}
		}

		options := extractor.DefaultOptions().WithThreshold(cfg.DefaultThreshold)
		options.MaxWorkers = cfg.MaxWorkers
		if req.Threshold != nil {
			if err := validation.ValidateThreshold(*req.Threshold); err != nil {
				respondError(c, apperrors.GetStatusCode(err), "invalid threshold", err)
				return
			}
			options = options.WithThreshold(*req.Threshold)
		}

		response, pngData, err := svc.Extract(ctx, req.WhiteURL, req.BlackURL, options)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				err = apperrors.NewTimeoutError("extraction timed out", err)
			}
			logger.WithError(err).WithFields(logrus.Fields{
				"white_url": req.WhiteURL,
				"black_url": req.BlackURL,
				"ip":        c.ClientIP(),
			}).Error("Alpha extraction failed")
			respondError(c, apperrors.GetStatusCode(err), "alpha extraction failed", err)
			return
		}

		if req.StoreBlob != "" || req.StoreContainer != "" {
			if err := svc.StoreResult(ctx, req.StoreContainer, req.StoreBlob, pngData); err != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"store_container": req.StoreContainer,
					"store_blob":      req.StoreBlob,
				}).Error("Failed to store extraction result")
				respondError(c, apperrors.GetStatusCode(err), "failed to store result", err)
				return
			}
		}

		duration := time.Since(startTime)
		logger.WithFields(logrus.Fields{
			"white_url":          req.WhiteURL,
			"black_url":          req.BlackURL,
			"threshold":          options.Threshold,
			"processing_time_ms": duration.Milliseconds(),
			"opaque_pixels":      response.Stats.OpaquePixels,
			"partial_pixels":     response.Stats.PartialPixels,
			"transparent_pixels": response.Stats.TransparentPixels,
		}).Info("Alpha extraction completed successfully")

		if c.Query("format") == "png" {
			c.Data(http.StatusOK, "image/png", pngData)
			return
		}

		response.ImageBase64 = base64.StdEncoding.EncodeToString(pngData)
		c.JSON(http.StatusOK, response)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
