package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cloud-ru/subscription-pricing-go/internal/cache"
	"github.com/cloud-ru/subscription-pricing-go/internal/metrics"
	"github.com/cloud-ru/subscription-pricing-go/internal/tools"
)

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

// Options параметры HTTP-сервера
type Options struct {
	Tools          map[string]tools.ToolHandler
	AllowedOrigins []string
	Cache          cache.Cache // nil отключает кэш
	CacheTTL       time.Duration
	CacheNamespace string // отпечаток конфигурации расчета, см. tools.Deps.Fingerprint
	Logger         *zap.Logger
}

// Server HTTP-обвязка над инструментами расчета
type Server struct {
	router *gin.Engine
	tools  map[string]tools.ToolHandler
	cache  cache.Cache
	ns     string
	ttl    time.Duration
	log    *zap.Logger
}

// New собирает роутер
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		router: gin.New(),
		tools:  opts.Tools,
		cache:  opts.Cache,
		ns:     opts.CacheNamespace,
		ttl:    opts.CacheTTL,
		log:    log,
	}

	s.router.Use(gin.Recovery(), requestID(), accessLog(log))
	corsConfig := cors.Config{
		AllowOrigins: opts.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	// пустой список cors.New отвергает паникой
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	s.router.Use(cors.New(corsConfig))

	s.router.GET("/healthz", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.POST("/tools/:name", func(c *gin.Context) { s.runTool(c, c.Param("name")) })
		api.POST("/pricing", func(c *gin.Context) { s.runTool(c, tools.PricingCompleteTool) })
	}
	return s
}

// Handler http.Handler для http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"tools":  tools.Names(s.tools),
	})
}

func (s *Server) runTool(c *gin.Context, name string) {
	handler, ok := s.tools[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "неизвестный инструмент: " + name})
		return
	}

	params := map[string]interface{}{}
	if err := c.ShouldBindJSON(&params); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "неверный JSON: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	key, cached := s.lookup(ctx, name, params)
	if cached != nil {
		c.JSON(http.StatusOK, gin.H{"tool": name, "result": cached, "cached": true})
		return
	}

	result, err := handler(ctx, params)
	if err != nil {
		status := http.StatusInternalServerError
		if tools.IsValidationError(err) {
			status = http.StatusBadRequest
		}
		s.log.Warn("tool call failed",
			zap.String("tool", name),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
			s.log.Warn("cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"tool": name, "result": result, "cached": false})
}

// lookup возвращает ключ кэша и сохраненный результат, если он есть.
// Пустой ключ означает, что кэш выключен или недоступен.
func (s *Server) lookup(ctx context.Context, name string, params map[string]interface{}) (string, json.RawMessage) {
	if s.cache == nil {
		return "", nil
	}
	key, err := cache.Key(s.ns, name, params)
	if err != nil {
		s.log.Warn("cache key failed", zap.Error(err))
		return "", nil
	}

	var raw json.RawMessage
	switch err := s.cache.Get(ctx, key, &raw); {
	case err == nil:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return key, raw
	case errors.Is(err, cache.ErrMiss):
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.log.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	return key, nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
