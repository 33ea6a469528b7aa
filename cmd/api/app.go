package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// App HTTP服务
type App struct {
	cfg            *config.Config
	logger         *zap.Logger
	server         *http.Server
	tracerShutdown tracing.ShutdownFunc
}

func newApp(cfg *config.Config, logger *zap.Logger, engine *gin.Engine, tracerShutdown tracing.ShutdownFunc) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		tracerShutdown: tracerShutdown,
	}
}

// Run 启动服务并阻塞，收到SIGINT/SIGTERM后优雅关闭
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.serve(ctx)
}

// serve ctx取消后停止接受新请求，等待现有请求完成
func (a *App) serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server on "+a.server.Addr, zap.String("mode", a.cfg.Server.Mode))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("收到关闭信号，开始优雅关闭")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	if tErr := a.tracerShutdown(shutdownCtx); tErr != nil {
		a.logger.Warn("刷新Span失败", zap.Error(tErr))
	}
	if err != nil {
		return err
	}

	a.logger.Info("服务已安全关闭")
	return nil
}
