package book

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/book/booktest"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

// recordingPublisher 记录已发布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []BookEvent
	err    error
}

func (p *recordingPublisher) PublishBookEvent(_ context.Context, event BookEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	create *CreateBookUseCase
	get    *GetBookUseCase
	update *UpdateBookUseCase
	list   *ListBooksUseCase
	delete *DeleteBookUseCase
	events *recordingPublisher
	logs   *observer.ObservedLogs
}

func newFixture() *fixture {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	events := &recordingPublisher{}
	svc := book.NewService(booktest.NewMemoryRepository())

	return &fixture{
		create: NewCreateBookUseCase(svc, events, logger),
		get:    NewGetBookUseCase(svc),
		update: NewUpdateBookUseCase(svc, events, logger),
		list:   NewListBooksUseCase(svc),
		delete: NewDeleteBookUseCase(svc, events, logger),
		events: events,
		logs:   logs,
	}
}

func str(s string) *string { return &s }
func num(n int64) *int64   { return &n }

func TestBookUseCases_Lifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.create.Execute(ctx, CreateBookRequest{Title: str("O Alienista"), Author: str("Machado de Assis"), Pages: num(96)})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := f.get.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "O Alienista", got.Title)
	assert.Equal(t, int64(96), got.Pages)
	assert.True(t, got.Active)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	updated, err := f.update.Execute(ctx, UpdateBookRequest{ID: created.ID, Title: str("O Alienista"), Author: str("Machado"), Pages: num(100)})
	require.NoError(t, err)
	assert.Equal(t, "Machado", updated.Author)
	assert.Equal(t, got.CreatedAt, updated.CreatedAt)

	list, err := f.list.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	deleted, err := f.delete.Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, DeletedMessage, deleted.Message)

	_, err = f.get.Execute(ctx, created.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	assert.Equal(t, []string{EventBookCreated, EventBookUpdated, EventBookDeleted}, f.events.types())
}

func TestCreateBookUseCase_LogsTitle(t *testing.T) {
	f := newFixture()

	_, err := f.create.Execute(context.Background(), CreateBookRequest{Title: str("Memórias Póstumas"), Author: str("a"), Pages: num(1)})
	require.NoError(t, err)

	entries := f.logs.FilterMessage("图书创建成功").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Memórias Póstumas", entries[0].ContextMap()["title"])
	assert.NotEmpty(t, entries[0].ContextMap()["book_id"])
}

func TestCreateBookUseCase_InvalidParameters(t *testing.T) {
	f := newFixture()

	_, err := f.create.Execute(context.Background(), CreateBookRequest{Title: str("t")})

	assert.ErrorIs(t, err, book.ErrInvalidParameters)
	assert.Empty(t, f.events.types(), "失败时不发布事件")
}

func TestBookUseCases_PublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture()
	f.events.err = errors.New("channel closed")

	resp, err := f.create.Execute(context.Background(), CreateBookRequest{Title: str("t"), Author: str("a"), Pages: num(1)})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 1, f.logs.FilterMessage("图书事件发布失败").Len())
}

func TestListBooksUseCase_EmptyIsNotNil(t *testing.T) {
	f := newFixture()

	list, err := f.list.Execute(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDeleteBookUseCase_Nonexistent(t *testing.T) {
	f := newFixture()

	_, err := f.delete.Execute(context.Background(), "65a4f0c2e4b0a1b2c3d4e5f6")

	assert.ErrorIs(t, err, book.ErrDeleteFailed)
	assert.Empty(t, f.events.types())
}

func TestBookUseCases_RecordSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracing.Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	f := newFixture()
	_, err := f.get.Execute(context.Background(), "")
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "BookUseCase.get", spans[0].Name)
	assert.Equal(t, "Error", spans[0].Status.Code.String())
}
