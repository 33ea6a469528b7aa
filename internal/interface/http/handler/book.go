package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase *appbook.CreateBookUseCase
	getBookUseCase    *appbook.GetBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	listBooksUseCase  *appbook.ListBooksUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
	logger            *zap.Logger
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	logger *zap.Logger,
) *BookHandler {
	return &BookHandler{
		createBookUseCase: createBookUseCase,
		getBookUseCase:    getBookUseCase,
		updateBookUseCase: updateBookUseCase,
		listBooksUseCase:  listBooksUseCase,
		deleteBookUseCase: deleteBookUseCase,
		logger:            logger,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  title、author、pages必须同时提供
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} dto.CreateBookResponse
// @Failure      400 {object} response.ErrorData "参数无效或存储失败"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, book.ErrInvalidParameters)
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:  req.Title,
		Author: req.Author,
		Pages:  req.Pages,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Created(c, &dto.CreateBookResponse{ID: result.ID})
}

// GetBook 查询图书详情
// @Summary      查询图书
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID(24位十六进制)"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorData "ID无效或图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	result, err := h.getBookUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.OK(c, dto.NewBookResponse(result))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  整体替换title、author、pages,created_at保持不变
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path string                true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorData
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, book.ErrInvalidParameters)
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:     c.Param("id"),
		Title:  req.Title,
		Author: req.Author,
		Pages:  req.Pages,
	})
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.OK(c, dto.NewBookResponse(result))
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  返回所有active图书,按标题升序
// @Tags         图书
// @Produce      json
// @Success      200 {array}  dto.BookResponse
// @Failure      400 {object} response.ErrorData
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	list, err := h.listBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.OK(c, dto.NewBookListResponse(list))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书
// @Produce      json
// @Param        id path string true "图书ID"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} response.ErrorData
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	result, err := h.deleteBookUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	response.Message(c, result.Message)
}
