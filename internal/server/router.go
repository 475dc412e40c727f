// Package server hosts the prediction form and JSON API over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Skufu/alzrisk/internal/patient"
	"github.com/Skufu/alzrisk/internal/predictor"
	"github.com/Skufu/alzrisk/internal/web"
)

// Predictor is the request-facing view of predictor.Predictor.
type Predictor interface {
	Predict(in patient.Input) (predictor.Result, error)
	FeatureNames() []string
}

type Options struct {
	Predictor        Predictor
	ModelPath        string
	Metrics          http.Handler
	Logger           *slog.Logger
	CORSAllowOrigins []string
	MaxBodyBytes     int64
}

// NewRouter constructs the gin engine with middleware and routes registered.
// Templates and static assets are resolved here so a broken embed fails
// startup.
func NewRouter(opts Options) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	static, err := web.Static()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(
		requestID(),
		requestLogger(opts.Logger),
		recovery(opts.Logger),
		limitBodySize(opts.MaxBodyBytes),
		cors.New(corsConfig(opts.CORSAllowOrigins)),
	)

	router.StaticFS("/static", http.FS(static))

	h := &handler{predictor: opts.Predictor, modelPath: opts.ModelPath, logger: opts.Logger}
	router.GET("/", h.form)
	router.POST("/", h.submit)

	api := router.Group("/api/v1")
	api.POST("/predictions", h.predict)
	api.GET("/model", h.model)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if opts.Predictor == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"model":  "not loaded",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"model":    "loaded",
			"features": len(opts.Predictor.FeatureNames()),
		})
	})

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
