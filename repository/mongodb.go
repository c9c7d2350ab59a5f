package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/BerniceZTT/client_crm/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// 表名
	ClientsTable       = "clients"
	ProjectsTable      = "projects"
	PaymentsTable      = "payments"
	RemindersTable     = "reminders"
	FilesTable         = "files"
	NotesTable         = "notes"
	UsersTable         = "users"
	RevokedTokensTable = "revoked_tokens"
	OperationLogsTable = "operation_logs"
)

// Tables 所有表
var Tables = []string{
	ClientsTable,
	ProjectsTable,
	PaymentsTable,
	RemindersTable,
	FilesTable,
	NotesTable,
	UsersTable,
	RevokedTokensTable,
	OperationLogsTable,
}

var client *mongo.Client

// InitMongoDB 初始化MongoDB连接
func InitMongoDB(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	// 设置连接超时
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	clientOptions := options.Client().ApplyURI(uri).SetRegistry(NewRegistry())
	client, err = mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("连接MongoDB失败: %w", err)
	}

	// 检查连接
	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping MongoDB失败: %w", err)
	}

	database := client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("已连接到MongoDB")

	return database, nil
}

// CloseMongoDB 关闭MongoDB连接
func CloseMongoDB(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Disconnect(ctx); err != nil {
		utils.Logger.Error().Err(err).Msg("断开MongoDB连接失败")
		return
	}
	utils.Logger.Info().Msg("已断开MongoDB连接")
}

// indexes 各表索引
var indexes = map[string][]mongo.IndexModel{
	ProjectsTable: {
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	},
	PaymentsTable: {
		{Keys: bson.D{{Key: "project_id", Value: 1}}},
		{Keys: bson.D{{Key: "payment_date", Value: -1}}},
	},
	RemindersTable: {
		{Keys: bson.D{{Key: "is_sent", Value: 1}, {Key: "reminder_date", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	},
	FilesTable: {
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	},
	NotesTable: {
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	},
	UsersTable: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	RevokedTokensTable: {
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	},
	OperationLogsTable: {
		{Keys: bson.D{{Key: "operation_time", Value: -1}}},
	},
}

// InitializeCollections 初始化集合和索引
func InitializeCollections(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("检查集合失败: %w", err)
	}
	exists := make(map[string]bool, len(existing))
	for _, name := range existing {
		exists[name] = true
	}

	for _, name := range Tables {
		if exists[name] {
			utils.Logger.Info().Str("collection", name).Msg("集合已存在")
		} else {
			if err := db.CreateCollection(ctx, name); err != nil {
				return fmt.Errorf("创建集合%s失败: %w", name, err)
			}
			utils.Logger.Info().Str("collection", name).Msg("创建集合成功")
		}

		if models, ok := indexes[name]; ok {
			if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
				return fmt.Errorf("创建%s索引失败: %w", name, err)
			}
		}
	}

	return nil
}

// GetDatabaseStatus 获取各集合文档数
func GetDatabaseStatus(ctx context.Context, db *mongo.Database) map[string]interface{} {
	result := make(map[string]interface{})

	for _, name := range Tables {
		count, err := db.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", name).Msg("获取集合计数失败")
			result[name] = map[string]interface{}{"count": 0, "error": err.Error()}
			continue
		}
		result[name] = map[string]interface{}{"count": count}
	}

	return result
}
