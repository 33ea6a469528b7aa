// Package booktest 图书仓储的测试替身
//
//   - MemoryRepository：内存实现，行为与Mongo仓储一致（ID校验、按标题排序、只列出有效图书）
//   - MockRepository：基于testify/mock，用于注入存储层故障
package booktest

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// MemoryRepository 内存图书仓储
type MemoryRepository struct {
	mu    sync.RWMutex
	seq   uint64
	books map[string]book.Book
}

// NewMemoryRepository 创建内存仓储
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{books: make(map[string]book.Book)}
}

var _ book.Repository = (*MemoryRepository)(nil)

// Create 分配24位十六进制ID（与ObjectID格式相同）
func (r *MemoryRepository) Create(_ context.Context, b *book.Book) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	id := fmt.Sprintf("%024x", r.seq)
	stored := *b
	stored.ID = id
	r.books[id] = stored
	return id, nil
}

// Put 直接写入一本图书（用于准备Active=false等数据）
func (r *MemoryRepository) Put(b book.Book) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[b.ID] = b
}

// Len 当前图书数量
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books)
}

// FindByID 根据ID查找
func (r *MemoryRepository) FindByID(_ context.Context, id string) (*book.Book, error) {
	if !ValidID(id) {
		return nil, book.ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

// Update 整体写入，返回匹配数
func (r *MemoryRepository) Update(_ context.Context, b *book.Book) (int64, error) {
	if !ValidID(b.ID) {
		return 0, book.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[b.ID]; !ok {
		return 0, nil
	}
	r.books[b.ID] = *b
	return 1, nil
}

// FindAllActive Active=true，按标题升序
func (r *MemoryRepository) FindAllActive(_ context.Context) ([]*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		if !b.Active {
			continue
		}
		b := b
		books = append(books, &b)
	}
	sort.SliceStable(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

// DeleteByID 物理删除
func (r *MemoryRepository) DeleteByID(_ context.Context, id string) (int64, error) {
	if !ValidID(id) {
		return 0, book.ErrInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return 0, nil
	}
	delete(r.books, id)
	return 1, nil
}

// ValidID 24位十六进制
func ValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// MockRepository testify/mock仓储
type MockRepository struct {
	mock.Mock
}

var _ book.Repository = (*MockRepository)(nil)

func (m *MockRepository) Create(ctx context.Context, b *book.Book) (string, error) {
	args := m.Called(ctx, b)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, b *book.Book) (int64, error) {
	args := m.Called(ctx, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) FindAllActive(ctx context.Context) ([]*book.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *MockRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
