package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"bitbucket.org/deskea/bdc_backend/compose"
	"bitbucket.org/deskea/bdc_backend/config"
	"bitbucket.org/deskea/bdc_backend/models"
	"bitbucket.org/deskea/bdc_backend/render"
	"bitbucket.org/deskea/bdc_backend/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// composeFromRequest runs the pure pipeline (parse -> normalize -> assemble)
// for one request. Missing optional fields never fail here; only a broken
// config does.
func composeFromRequest(c *gin.Context) (*models.OrderConfig, *models.Document, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, nil, &compose.ConfigurationError{Reason: "unreadable request body"}
	}
	var cfg models.OrderConfig
	if err := utils.UnmarshalFromJSON(body, &cfg); err != nil {
		return nil, nil, &compose.ConfigurationError{Reason: "config is not valid JSON: " + err.Error()}
	}

	strict := config.StrictFinancials() || strings.EqualFold(c.Query("strict"), "true")
	normalized, err := compose.Normalize(&cfg, time.Now(), strict)
	if err != nil {
		return nil, nil, err
	}
	doc, err := compose.Assemble(normalized)
	if err != nil {
		return nil, nil, err
	}
	return normalized, doc, nil
}

func writeComposeError(c *gin.Context, err error) {
	logger := config.GetLogger()
	var cfgErr *compose.ConfigurationError
	if errors.As(err, &cfgErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Reason})
		return
	}
	// AssemblyError or renderer failure: a defect, not bad input.
	config.LogError(logger, "server.go", "writeComposeError", "compose pipeline", nil, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "document generation failed"})
}

// bdcHandler renders the order form and streams the workbook back.
func bdcHandler(renderer render.Renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		normalized, doc, err := composeFromRequest(c)
		if err != nil {
			writeComposeError(c, err)
			return
		}
		data, err := renderer.Render(doc)
		if err != nil {
			config.LogError(logger, "server.go", "bdcHandler", "render", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "document generation failed"})
			return
		}

		filename := filepath.Base(normalized.OutputPath)
		logger.WithFields(logrus.Fields{
			"ref":      normalized.BdcRef,
			"client":   normalized.Client.RaisonSociale,
			"filename": filename,
			"bytes":    len(data),
		}).Info("bdc generated")

		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, xlsxContentType, data)
	}
}

// bdcPreviewHandler returns the composed document tree as JSON, for UIs that
// want to show the draft before downloading the file.
func bdcPreviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, doc, err := composeFromRequest(c)
		if err != nil {
			writeComposeError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

func main() {
	godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	r := gin.New()
	// Correlation IDs: generate once per request and attach to context.
	r.Use(func(c *gin.Context) {
		cid := c.GetHeader("x-correlation-id")
		if cid == "" {
			cid = uuid.NewString()
		}
		c.Header("x-correlation-id", cid)
		c.Next()
	})

	corsConfig := cors.DefaultConfig()
	// In production, require an explicit allowlist via CORS_ALLOWED_ORIGINS.
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "x-correlation-id")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	r.Use(cors.New(corsConfig))

	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	renderer := render.NewXLSX()
	r.POST("/bdc", bdcHandler(renderer))
	r.POST("/bdc/preview", bdcPreviewHandler())
	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	logger.WithFields(logrus.Fields{
		"port": port,
	}).Info("bdc generator listening")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}
}

// customErrorLogger is a custom Gin middleware that logs only errors
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only log when there are errors
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
