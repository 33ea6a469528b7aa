//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改本文件后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
)

// infrastructureSet 配置、日志、追踪、MongoDB、消息队列
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	provideTracing,
	provideMongoClient,
	provideBookCollection,
	provideBookRepository,
	messaging.NewEventPublisher,
)

var domainSet = wire.NewSet(
	book.NewService,
)

var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewDeleteBookUseCase,
)

var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	provideRateLimiter,
	router.New,
)

// InitializeApp 初始化整个应用
// cleanup按创建的逆序释放资源（限流器、RabbitMQ、MongoDB、Logger）
func InitializeApp() (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
		newApp,
	)
	return nil, nil, nil
}
