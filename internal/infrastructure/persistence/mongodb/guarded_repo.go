package mongodb

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// BreakerName 存储层熔断器名称（指标标签、日志字段）
const BreakerName = "mongodb"

// NewStoreBreaker 创建存储层熔断器
// 只有上游故障计为失败；ID非法、记录不存在等业务结果不会触发熔断
// 调用方取消或超时不计入统计
func NewStoreBreaker(cfg config.BreakerConfig, logger *zap.Logger) *circuitbreaker.CircuitBreaker {
	failures := cfg.Failures
	if failures == 0 {
		failures = 5
	}

	metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": BreakerName}, float64(circuitbreaker.StateClosed))

	return circuitbreaker.NewCircuitBreaker(BreakerName, circuitbreaker.Config{
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= failures
		},
		IsSuccessful: isStoreHealthy,
		IsExcluded:   isCallerCanceled,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.Warn("熔断器状态变化",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
		},
	})
}

// isStoreHealthy 业务错误说明存储可用
func isStoreHealthy(err error) bool {
	if err == nil {
		return true
	}
	return !errors.Is(err, apperrors.ErrUpstreamFailure) && apperrors.IsAppError(err)
}

// isCallerCanceled 请求方断开或超时，不能说明存储的状态
func isCallerCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// guardedRepository 熔断装饰器
// 熔断打开时不访问存储，直接返回UpstreamFailure
type guardedRepository struct {
	next book.Repository
	cb   *circuitbreaker.CircuitBreaker
}

// NewGuardedRepository 用熔断器包装仓储
func NewGuardedRepository(next book.Repository, cb *circuitbreaker.CircuitBreaker) book.Repository {
	return &guardedRepository{next: next, cb: cb}
}

func (r *guardedRepository) Create(ctx context.Context, b *book.Book) (string, error) {
	var id string
	err := r.execute(func() error {
		var err error
		id, err = r.next.Create(ctx, b)
		return err
	})
	return id, err
}

func (r *guardedRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var found *book.Book
	err := r.execute(func() error {
		var err error
		found, err = r.next.FindByID(ctx, id)
		return err
	})
	return found, err
}

func (r *guardedRepository) Update(ctx context.Context, b *book.Book) (int64, error) {
	var matched int64
	err := r.execute(func() error {
		var err error
		matched, err = r.next.Update(ctx, b)
		return err
	})
	return matched, err
}

func (r *guardedRepository) FindAllActive(ctx context.Context) ([]*book.Book, error) {
	var books []*book.Book
	err := r.execute(func() error {
		var err error
		books, err = r.next.FindAllActive(ctx)
		return err
	})
	return books, err
}

func (r *guardedRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	var deleted int64
	err := r.execute(func() error {
		var err error
		deleted, err = r.next.DeleteByID(ctx, id)
		return err
	})
	return deleted, err
}

func (r *guardedRepository) execute(fn func() error) error {
	labels := map[string]string{"name": r.cb.Name()}

	err := r.cb.Execute(fn)
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		labels["result"] = metrics.ResultRejected
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, labels)
		return apperrors.Wrap(err, "存储服务暂不可用")
	case isCallerCanceled(err):
		labels["result"] = metrics.ResultCanceled
	case isStoreHealthy(err):
		labels["result"] = metrics.ResultSuccess
	default:
		labels["result"] = metrics.ResultFailure
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, labels)
	return err
}
