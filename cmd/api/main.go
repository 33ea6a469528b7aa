package main

import (
	"log"

	"go.uber.org/zap"

	_ "github.com/xiebiao/bookshelf/docs"
)

// @title        Bookshelf API
// @version      1.0
// @description  基于MongoDB的图书管理REST API
// @BasePath     /
func main() {
	app, cleanup, err := InitializeApp()
	if err != nil {
		// Logger可能尚未创建
		log.Fatalf("初始化失败: %v", err)
	}

	if err := app.Run(); err != nil {
		app.logger.Error("服务异常退出", zap.Error(err))
		cleanup()
		log.Fatal(err)
	}

	cleanup()
}
