package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerniceZTT/client_crm/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound 按ID更新或删除时记录不存在
var ErrNotFound = errors.New("记录不存在")

// Gateway 远端数据读写接口，所有操作都可能失败
type Gateway interface {
	Select(ctx context.Context, q Query, out interface{}) error
	Insert(ctx context.Context, table string, rows ...interface{}) error
	Update(ctx context.Context, table, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, table, id string) error
	DeleteWhere(ctx context.Context, table, column string, value interface{}) (int64, error)
}

// MongoGateway 基于MongoDB的实现
type MongoGateway struct {
	db *mongo.Database
}

// NewMongoGateway 创建网关
func NewMongoGateway(db *mongo.Database) *MongoGateway {
	return &MongoGateway{db: db}
}

// Select 执行查询并把结果解码到 out（切片指针）
func (g *MongoGateway) Select(ctx context.Context, q Query, out interface{}) error {
	pipeline, err := BuildPipeline(q)
	if err != nil {
		return err
	}

	cursor, err := g.db.Collection(q.Table).Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("查询%s失败: %w", q.Table, err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("解析%s数据失败: %w", q.Table, err)
	}

	utils.LogDbOperation("select", q.Table, pipeline, nil)
	return nil
}

// Insert 插入一行或多行
func (g *MongoGateway) Insert(ctx context.Context, table string, rows ...interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	result, err := g.db.Collection(table).InsertMany(ctx, rows)
	if err != nil {
		return fmt.Errorf("插入%s失败: %w", table, err)
	}

	utils.LogDbOperation("insert", table, nil, result.InsertedIDs)
	return nil
}

// Update 按ID更新字段
func (g *MongoGateway) Update(ctx context.Context, table, id string, fields map[string]interface{}) error {
	result, err := g.db.Collection(table).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
	)
	if err != nil {
		return fmt.Errorf("更新%s失败: %w", table, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("更新%s %s: %w", table, id, ErrNotFound)
	}

	utils.LogDbOperation("update", table, id, fields)
	return nil
}

// Delete 按ID删除
func (g *MongoGateway) Delete(ctx context.Context, table, id string) error {
	result, err := g.db.Collection(table).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("删除%s失败: %w", table, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("删除%s %s: %w", table, id, ErrNotFound)
	}

	utils.LogDbOperation("delete", table, id, nil)
	return nil
}

// DeleteWhere 按列值批量删除，用于级联删除
func (g *MongoGateway) DeleteWhere(ctx context.Context, table, column string, value interface{}) (int64, error) {
	filter := bson.M{fieldName(column): condValue(value)}
	result, err := g.db.Collection(table).DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("批量删除%s失败: %w", table, err)
	}

	utils.LogDbOperation("deleteMany", table, filter, result.DeletedCount)
	return result.DeletedCount, nil
}
