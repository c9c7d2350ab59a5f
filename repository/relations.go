package repository

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// relation 描述一张表到另一张表的外键关联
type relation struct {
	Table   string
	Local   string
	Foreign string
	Many    bool
}

// relations 按 父表 -> 关联名 注册
var relations = map[string]map[string]relation{
	ClientsTable: {
		ProjectsTable: {Table: ProjectsTable, Local: "_id", Foreign: "client_id", Many: true},
	},
	ProjectsTable: {
		PaymentsTable: {Table: PaymentsTable, Local: "_id", Foreign: "project_id", Many: true},
		ClientsTable:  {Table: ClientsTable, Local: "client_id", Foreign: "_id"},
	},
	PaymentsTable: {
		ProjectsTable: {Table: ProjectsTable, Local: "project_id", Foreign: "_id"},
	},
	FilesTable: {
		ClientsTable: {Table: ClientsTable, Local: "client_id", Foreign: "_id"},
	},
	RemindersTable: {
		ClientsTable:  {Table: ClientsTable, Local: "client_id", Foreign: "_id"},
		ProjectsTable: {Table: ProjectsTable, Local: "project_id", Foreign: "_id"},
	},
}

// lookupStages 为关联生成 $lookup，单值关联再 $unwind 并保留空值
func lookupStages(table string, includes []string) ([]bson.D, error) {
	nested := map[string][]string{}
	for _, inc := range includes {
		parts := strings.SplitN(inc, ".", 2)
		if len(parts) == 2 {
			nested[parts[0]] = append(nested[parts[0]], parts[1])
		}
	}

	var stages []bson.D
	for _, name := range topLevel(includes) {
		rel, ok := relations[table][name]
		if !ok {
			return nil, fmt.Errorf("表 %s 不存在关联 %s", table, name)
		}

		sub := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$" + rel.Foreign, "$$key"}}}}},
		}
		children, err := lookupStages(rel.Table, nested[name])
		if err != nil {
			return nil, err
		}
		sub = append(sub, children...)

		stages = append(stages, bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: rel.Table},
			{Key: "let", Value: bson.M{"key": "$" + rel.Local}},
			{Key: "pipeline", Value: sub},
			{Key: "as", Value: name},
		}}})

		if !rel.Many {
			stages = append(stages, bson.D{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$" + name},
				{Key: "preserveNullAndEmptyArrays", Value: true},
			}}})
		}
	}
	return stages, nil
}
