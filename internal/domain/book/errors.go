package book

import (
	"net/http"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 图书领域错误定义
// Status是名义状态码，HTTP层统一以400返回
var (
	// ErrInvalidParameters 标题、作者、页数缺失
	ErrInvalidParameters = apperrors.New(apperrors.KindInvalidParameters, http.StatusBadRequest, "参数无效")

	// ErrInvalidID ID为空或不是合法的ObjectID
	ErrInvalidID = apperrors.New(apperrors.KindInvalidIdentifier, http.StatusBadRequest, "ID无效")

	// ErrBookNotFound 未找到指定ID的图书
	ErrBookNotFound = apperrors.New(apperrors.KindNotFound, http.StatusBadRequest, "未找到指定ID的图书")

	// ErrDeleteFailed 删除没有命中任何文档
	// 名义状态码沿用502，与既有客户端约定一致
	ErrDeleteFailed = apperrors.New(apperrors.KindDeleteFailed, http.StatusBadGateway, "删除图书失败")
)
