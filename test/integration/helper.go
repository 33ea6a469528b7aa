// Package integration 针对运行中服务的黑盒测试
//
// 需要先启动服务（连接真实MongoDB），再设置BOOKSHELF_BASE_URL：
//
//	BOOKSHELF_BASE_URL=http://127.0.0.1:8090 go test ./test/integration/...
//
// 未设置时全部跳过。
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	// BaseURLEnv 服务地址环境变量
	BaseURLEnv = "BOOKSHELF_BASE_URL"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// BookData 图书响应
type BookData struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Pages     int64     `json:"pages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Active    bool      `json:"active"`
}

// ErrorData 错误响应
type ErrorData struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// Result 原始响应
type Result struct {
	StatusCode int
	Body       []byte
}

// Decode 解析响应体
func (r *Result) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "解析JSON响应失败: %s", string(r.Body))
}

// BaseURL 服务地址，未配置时跳过测试
func BaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv(BaseURLEnv)
	if url == "" {
		t.Skipf("未设置%s，跳过集成测试", BaseURLEnv)
	}
	return url
}

// Do 发送请求，body为nil时不带请求体
func Do(t *testing.T, method, url string, body interface{}) *Result {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err, "JSON序列化失败")
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return &Result{StatusCode: resp.StatusCode, Body: data}
}

// UniqueTitle 生成不重复的标题，避免多次运行互相干扰
func UniqueTitle(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CreateTestBook 创建图书并返回ID，测试结束时删除
func CreateTestBook(t *testing.T, baseURL, title string) string {
	t.Helper()

	res := Do(t, http.MethodPost, baseURL+"/books", map[string]interface{}{
		"title":  title,
		"author": "集成测试",
		"pages":  128,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(res.Body))

	var created struct {
		ID string `json:"id"`
	}
	res.Decode(t, &created)
	require.Len(t, created.ID, 24)

	t.Cleanup(func() {
		Do(t, http.MethodDelete, baseURL+"/books/"+created.ID, nil)
	})
	return created.ID
}
