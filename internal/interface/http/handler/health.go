package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// WelcomeMessage 根路径返回的提示
const WelcomeMessage = "Bookshelf API with Gin Works!!!"

// Root 根路径
// @Summary  服务可用提示
// @Tags     系统
// @Produce  json
// @Success  200 {object} dto.MessageResponse
// @Router   / [get]
func Root(c *gin.Context) {
	response.Message(c, WelcomeMessage)
}

// Health 健康检查
// 只表示进程存活，不探测MongoDB
// @Summary  健康检查
// @Tags     系统
// @Produce  json
// @Success  200 {object} dto.HealthResponse
// @Router   /health [get]
func Health(c *gin.Context) {
	response.OK(c, dto.HealthResponse{Status: "Ok"})
}
