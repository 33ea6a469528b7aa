package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/mongodb"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// provideLogger 创建zap Logger，cleanup时刷新缓冲
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	l, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = l.Sync() }, nil
}

// provideMongoClient 连接MongoDB，cleanup时断开
func provideMongoClient(cfg *config.Config, log *zap.Logger) (*mongo.Client, func(), error) {
	client, err := mongodb.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
		defer cancel()
		if err := mongodb.Disconnect(ctx, client); err != nil {
			log.Warn("断开MongoDB连接失败", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

// provideBookCollection 获取图书集合并确保索引存在
// 索引创建失败不影响启动（列表查询仍然可用，只是没有索引）
func provideBookCollection(client *mongo.Client, cfg *config.Config, log *zap.Logger) *mongo.Collection {
	coll := mongodb.NewBookCollection(client, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.ConnectTimeout)
	defer cancel()
	if err := mongodb.EnsureIndexes(ctx, coll); err != nil {
		log.Warn("创建图书索引失败", zap.Error(err))
	}
	return coll
}

// provideBookRepository 图书仓储，启用熔断时加一层装饰
// 熔断器创建时会写入初始状态指标，因此先注册指标
func provideBookRepository(coll *mongo.Collection, cfg *config.Config, log *zap.Logger) book.Repository {
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	repo := mongodb.NewBookRepository(coll)
	if !cfg.Breaker.Enabled {
		return repo
	}
	return mongodb.NewGuardedRepository(repo, mongodb.NewStoreBreaker(cfg.Breaker, log))
}

// provideRateLimiter 未启用时返回nil
func provideRateLimiter(cfg *config.Config, log *zap.Logger) (*middleware.RateLimiter, func()) {
	if !cfg.RateLimit.Enabled {
		return nil, func() {}
	}
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	return limiter, limiter.Stop
}

// provideTracing 启用时初始化OTLP导出，否则返回空操作
func provideTracing(cfg *config.Config, log *zap.Logger) (tracing.ShutdownFunc, error) {
	if !cfg.Tracing.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	shutdown, err := tracing.InitTracer(context.Background(), tracing.Config{
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		return nil, err
	}

	log.Info("链路追踪已启用", zap.String("endpoint", cfg.Tracing.Endpoint))
	return shutdown, nil
}
