package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "wordsalad/docs"
	"wordsalad/internal/ai"
	"wordsalad/internal/config"
	"wordsalad/internal/handler"
	"wordsalad/internal/pkg/tracer"
	"wordsalad/internal/pkg/wikipedia"
	"wordsalad/internal/server/middleware"
	"wordsalad/internal/service"
)

// Server HTTP 服务器
type Server struct {
	cfg           *config.Config
	engine        *gin.Engine
	paragraphSvc  handler.ParagraphGenerator
	traceShutdown func(context.Context) error
}

// New 创建服务器实例
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	svc, err := NewParagraphService(ctx, cfg)
	if err != nil {
		return nil, err
	}

	traceShutdown, err := tracer.Init(ctx, &cfg.Trace)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracer: %w", err)
	}

	srv := NewWithService(cfg, svc)
	srv.traceShutdown = traceShutdown
	return srv, nil
}

// NewWithService 使用已有的段落服务创建服务器
func NewWithService(cfg *config.Config, svc handler.ParagraphGenerator) *Server {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &Server{
		cfg:           cfg,
		engine:        gin.New(),
		paragraphSvc:  svc,
		traceShutdown: func(context.Context) error { return nil },
	}

	srv.setupRoutes()

	return srv
}

// NewParagraphService 根据配置组装知识源与生成器
func NewParagraphService(ctx context.Context, cfg *config.Config) (*service.ParagraphService, error) {
	generator, err := ai.NewGenerator(ctx, &cfg.AI, &cfg.Generation)
	if err != nil {
		return nil, err
	}

	// 知识源 (可选)
	var contextProvider service.ContextProvider
	if cfg.Wikipedia.Enabled {
		contextProvider = wikipedia.NewClient(&cfg.Wikipedia, cfg.Generation.ContextMaxChars)
		log.Info().Str("language", cfg.Wikipedia.Language).Msg("wikipedia context enabled")
	} else {
		log.Warn().Msg("wikipedia disabled, paragraphs are generated without context")
	}

	return service.NewParagraphService(contextProvider, generator, cfg.Generation), nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	if s.cfg.Trace.Enabled {
		s.engine.Use(middleware.Trace(s.cfg.Trace.ServiceName))
	}
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS(s.cfg.CORS.AllowedOrigins))
	if s.cfg.Metrics.Enabled {
		s.engine.Use(middleware.Metrics())
	}

	// 健康检查
	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/", healthHandler.Info)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	// Prometheus 指标
	if s.cfg.Metrics.Enabled {
		path := s.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		s.engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	paragraphHandler := handler.NewParagraphHandler(s.paragraphSvc)
	s.engine.POST("/generate", paragraphHandler.Generate)

	// API v1
	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/generate", paragraphHandler.Generate)
	}
}

// Run 启动服务器
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if err := s.traceShutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to shutdown tracer")
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
