package book_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/book/booktest"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// testClock 每次调用前进1秒
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newClock() *testClock {
	return &testClock{t: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
}

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

func validCreate(title string) book.CreateInput {
	return book.CreateInput{Title: strPtr(title), Author: strPtr("Machado de Assis"), Pages: intPtr(256)}
}

func newMemoryService() (book.Service, *booktest.MemoryRepository) {
	repo := booktest.NewMemoryRepository()
	return book.NewServiceWithClock(repo, newClock().Now), repo
}

func TestService_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()

	id, err := svc.Create(ctx, validCreate("Dom Casmurro"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Dom Casmurro", got.Title)
	assert.Equal(t, "Machado de Assis", got.Author)
	assert.Equal(t, int64(256), got.Pages)
	assert.True(t, got.Active)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt, "创建时CreatedAt等于UpdatedAt")
}

func TestService_CreateMissingFields(t *testing.T) {
	tests := []struct {
		name string
		in   book.CreateInput
	}{
		{name: "缺少title", in: book.CreateInput{Author: strPtr("a"), Pages: intPtr(1)}},
		{name: "缺少author", in: book.CreateInput{Title: strPtr("t"), Pages: intPtr(1)}},
		{name: "缺少pages", in: book.CreateInput{Title: strPtr("t"), Author: strPtr("a")}},
		{name: "全部缺失", in: book.CreateInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &booktest.MockRepository{}
			svc := book.NewService(repo)

			_, err := svc.Create(context.Background(), tt.in)

			assert.ErrorIs(t, err, book.ErrInvalidParameters)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreatePresenceOnly(t *testing.T) {
	// 只检查字段是否存在，空字符串和0页都允许
	svc, _ := newMemoryService()

	id, err := svc.Create(context.Background(), book.CreateInput{
		Title: strPtr(""), Author: strPtr(""), Pages: intPtr(0),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestService_CreateStoreFailure(t *testing.T) {
	repo := &booktest.MockRepository{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*book.Book")).
		Return("", errors.New("connection reset"))

	_, err := book.NewService(repo).Create(context.Background(), validCreate("x"))

	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
	assert.Equal(t, 502, apperrors.GetAppError(err).Status)
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()

	t.Run("空ID", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "")
		assert.ErrorIs(t, err, book.ErrInvalidID)
	})

	t.Run("格式非法的ID不会中止进程", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "not-an-object-id")
		assert.ErrorIs(t, err, apperrors.ErrInvalidIdentifier)
	})

	t.Run("不存在", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "65a4f0c2e4b0a1b2c3d4e5f6")
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestService_GetByIDStoreFailure(t *testing.T) {
	repo := &booktest.MockRepository{}
	repo.On("FindByID", mock.Anything, "65a4f0c2e4b0a1b2c3d4e5f6").
		Return(nil, errors.New("server selection timeout"))

	_, err := book.NewService(repo).GetByID(context.Background(), "65a4f0c2e4b0a1b2c3d4e5f6")

	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryService()

	id, err := svc.Create(ctx, validCreate("Old Title"))
	require.NoError(t, err)
	before, err := svc.GetByID(ctx, id)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, id, book.UpdateInput{
		Title: strPtr("New Title"), Author: strPtr("New Author"), Pages: intPtr(300),
	})
	require.NoError(t, err)

	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "New Author", updated.Author)
	assert.Equal(t, int64(300), updated.Pages)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt, "CreatedAt保持不变")
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt), "UpdatedAt应前进")
	assert.True(t, updated.Active)

	refetched, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, updated, refetched)
}

func TestService_UpdateReactivates(t *testing.T) {
	ctx := context.Background()
	repo := booktest.NewMemoryRepository()
	svc := book.NewServiceWithClock(repo, newClock().Now)

	repo.Put(book.Book{ID: "65a4f0c2e4b0a1b2c3d4e5f6", Title: "Hidden", Active: false})

	updated, err := svc.Update(ctx, "65a4f0c2e4b0a1b2c3d4e5f6", book.UpdateInput{
		Title: strPtr("Visible"), Author: strPtr("a"), Pages: intPtr(1),
	})
	require.NoError(t, err)
	assert.True(t, updated.Active)
}

func TestService_UpdateValidation(t *testing.T) {
	repo := &booktest.MockRepository{}
	svc := book.NewService(repo)
	ctx := context.Background()

	t.Run("部分字段视为无效参数", func(t *testing.T) {
		_, err := svc.Update(ctx, "65a4f0c2e4b0a1b2c3d4e5f6", book.UpdateInput{Title: strPtr("only title")})
		assert.ErrorIs(t, err, book.ErrInvalidParameters)
	})

	t.Run("参数校验先于ID校验", func(t *testing.T) {
		_, err := svc.Update(ctx, "", book.UpdateInput{})
		assert.ErrorIs(t, err, book.ErrInvalidParameters)
	})

	t.Run("空ID", func(t *testing.T) {
		_, err := svc.Update(ctx, "", book.UpdateInput{Title: strPtr("t"), Author: strPtr("a"), Pages: intPtr(1)})
		assert.ErrorIs(t, err, book.ErrInvalidID)
	})

	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestService_UpdateNonexistent(t *testing.T) {
	svc, _ := newMemoryService()

	_, err := svc.Update(context.Background(), "65a4f0c2e4b0a1b2c3d4e5f6", book.UpdateInput{
		Title: strPtr("t"), Author: strPtr("a"), Pages: intPtr(1),
	})

	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestService_UpdateMatchedZero(t *testing.T) {
	// 查询到图书后被并发删除：写入匹配数为0
	id := "65a4f0c2e4b0a1b2c3d4e5f6"
	repo := &booktest.MockRepository{}
	repo.On("FindByID", mock.Anything, id).Return(&book.Book{ID: id, Title: "t"}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(b *book.Book) bool { return b.ID == id })).
		Return(int64(0), nil)

	_, err := book.NewService(repo).Update(context.Background(), id, book.UpdateInput{
		Title: strPtr("t"), Author: strPtr("a"), Pages: intPtr(1),
	})

	assert.ErrorIs(t, err, book.ErrBookNotFound)
	repo.AssertExpectations(t)
}

func TestService_UpdateStoreFailure(t *testing.T) {
	id := "65a4f0c2e4b0a1b2c3d4e5f6"
	repo := &booktest.MockRepository{}
	repo.On("FindByID", mock.Anything, id).Return(&book.Book{ID: id}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(int64(0), errors.New("write concern error"))

	_, err := book.NewService(repo).Update(context.Background(), id, book.UpdateInput{
		Title: strPtr("t"), Author: strPtr("a"), Pages: intPtr(1),
	})

	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}

func TestService_ListActive(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMemoryService()

	_, err := svc.Create(ctx, validCreate("B"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, validCreate("A"))
	require.NoError(t, err)
	repo.Put(book.Book{ID: "ffffffffffffffffffffffff", Title: "0-inactive", Active: false})

	books, err := svc.ListActive(ctx)
	require.NoError(t, err)

	titles := make([]string, 0, len(books))
	for _, b := range books {
		titles = append(titles, b.Title)
	}
	assert.Equal(t, []string{"A", "B"}, titles)
}

func TestService_ListActiveStoreFailure(t *testing.T) {
	repo := &booktest.MockRepository{}
	repo.On("FindAllActive", mock.Anything).Return(nil, errors.New("cursor error"))

	_, err := book.NewService(repo).ListActive(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newMemoryService()

	id, err := svc.Create(ctx, validCreate("Delete me"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(ctx, id))
	assert.Zero(t, repo.Len())

	_, err = svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, book.ErrBookNotFound, "删除后查询应失败")

	err = svc.DeleteByID(ctx, id)
	assert.ErrorIs(t, err, book.ErrDeleteFailed, "重复删除应失败")
	assert.Equal(t, 502, apperrors.GetAppError(err).Status)

	assert.ErrorIs(t, svc.DeleteByID(ctx, ""), book.ErrInvalidID)
}

func TestService_DeleteStoreFailure(t *testing.T) {
	repo := &booktest.MockRepository{}
	repo.On("DeleteByID", mock.Anything, "65a4f0c2e4b0a1b2c3d4e5f6").Return(int64(0), errors.New("not primary"))

	err := book.NewService(repo).DeleteByID(context.Background(), "65a4f0c2e4b0a1b2c3d4e5f6")

	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}
