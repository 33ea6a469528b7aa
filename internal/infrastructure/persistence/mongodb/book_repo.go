package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// bookRepository 图书仓储实现(MongoDB)
// 设计说明：
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责领域实体与bson文档之间的转换
// 3. 驱动错误统一包装为UpstreamFailure,ID格式错误和记录不存在转换为业务错误
type bookRepository struct {
	coll *mongo.Collection
}

// NewBookRepository 创建图书仓储
func NewBookRepository(coll *mongo.Collection) book.Repository {
	return &bookRepository{coll: coll}
}

// Create 插入一条文档，返回新ID（十六进制）
func (r *bookRepository) Create(ctx context.Context, b *book.Book) (string, error) {
	res, err := r.coll.InsertOne(ctx, toDocument(b))
	if err != nil {
		return "", apperrors.Wrap(err, "创建图书失败")
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperrors.Wrap(fmt.Errorf("unexpected inserted id type %T", res.InsertedID), "创建图书失败")
	}
	return oid.Hex(), nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var doc bookDocument
	err = r.coll.FindOne(ctx, bson.M{fieldID: oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&doc), nil
}

// Update 按_id写入全部可变字段，返回匹配数
// 不做存在性预检查，匹配数为0由调用方处理
func (r *bookRepository) Update(ctx context.Context, b *book.Book) (int64, error) {
	oid, err := parseID(b.ID)
	if err != nil {
		return 0, err
	}

	update := bson.M{"$set": bson.M{
		fieldTitle:     b.Title,
		fieldAuthor:    b.Author,
		fieldPages:     b.Pages,
		fieldCreatedAt: b.CreatedAt,
		fieldUpdatedAt: b.UpdatedAt,
		fieldActive:    b.Active,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{fieldID: oid}, update)
	if err != nil {
		return 0, apperrors.Wrap(err, "更新图书失败")
	}
	return res.MatchedCount, nil
}

// FindAllActive 查询active=true的图书，按title升序
func (r *bookRepository) FindAllActive(ctx context.Context) ([]*book.Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: fieldTitle, Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{fieldActive: true}, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Wrap(err, "读取图书列表失败")
	}

	books := make([]*book.Book, 0, len(docs))
	for i := range docs {
		books = append(books, toBookEntity(&docs[i]))
	}
	return books, nil
}

// DeleteByID 物理删除，返回删除数
func (r *bookRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{fieldID: oid})
	if err != nil {
		return 0, apperrors.Wrap(err, "删除图书失败")
	}
	return res.DeletedCount, nil
}
