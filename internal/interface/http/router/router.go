package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// New 创建Gin引擎并注册路由
//
// 中间件顺序：Recovery → RequestID → Logger → Metrics → Tracing → RateLimit
// limiter为nil表示不限流
func New(
	cfg *config.Config,
	logger *zap.Logger,
	bookHandler *handler.BookHandler,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	// 未配置可信代理时忽略X-Forwarded-For，限流按连接对端IP计算
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Warn("可信代理配置无效，不信任任何代理", zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(logger),
	)

	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
		r.Use(middleware.Metrics())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	r.Use(middleware.Tracing())

	// Swagger文档仅在非release模式开放
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/", handler.Root)
	r.GET("/health", handler.Health)

	books := r.Group("/books")
	if limiter != nil {
		books.Use(limiter.Middleware())
	}
	{
		books.POST("", bookHandler.CreateBook)
		books.GET("", bookHandler.ListBooks)
		books.GET("/:id", bookHandler.GetBook)
		books.PUT("/:id", bookHandler.UpdateBook)
		books.DELETE("/:id", bookHandler.DeleteBook)
	}

	return r
}
