package repository

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Cond 单列过滤条件，Value 为字符串切片时按 $in 匹配
type Cond struct {
	Column string
	Value  interface{}
}

// Query 对单张表的读请求
type Query struct {
	Table     string
	Columns   []string
	EqConds   []Cond
	GteConds  []Cond
	Includes  []string
	OrderBy   string
	Ascending bool
}

// From 创建查询
func From(table string) Query {
	return Query{Table: table}
}

// Select 指定返回列，关联字段自动保留
func (q Query) Select(columns ...string) Query {
	q.Columns = append(append([]string(nil), q.Columns...), columns...)
	return q
}

// Eq 追加等值过滤
func (q Query) Eq(column string, value interface{}) Query {
	q.EqConds = append(append([]Cond(nil), q.EqConds...), Cond{Column: column, Value: value})
	return q
}

// Gte 追加大于等于过滤
func (q Query) Gte(column string, value interface{}) Query {
	q.GteConds = append(append([]Cond(nil), q.GteConds...), Cond{Column: column, Value: value})
	return q
}

// Include 关联子表，支持 "projects.clients" 形式的多级关联
func (q Query) Include(relations ...string) Query {
	q.Includes = append(append([]string(nil), q.Includes...), relations...)
	return q
}

// Order 排序
func (q Query) Order(column string, ascending bool) Query {
	q.OrderBy = column
	q.Ascending = ascending
	return q
}

// fieldName id 列映射到 _id
func fieldName(column string) string {
	if column == "id" {
		return "_id"
	}
	return column
}

func condValue(v interface{}) interface{} {
	if values, ok := v.([]string); ok {
		return bson.M{"$in": values}
	}
	return v
}

// matchStage 合并等值与大于等于条件
func matchStage(q Query) bson.D {
	match := bson.D{}
	for _, c := range q.EqConds {
		match = append(match, bson.E{Key: fieldName(c.Column), Value: condValue(c.Value)})
	}

	gte := map[string]bson.D{}
	var order []string
	for _, c := range q.GteConds {
		name := fieldName(c.Column)
		if _, ok := gte[name]; !ok {
			order = append(order, name)
		}
		gte[name] = append(gte[name], bson.E{Key: "$gte", Value: c.Value})
	}
	for _, name := range order {
		match = append(match, bson.E{Key: name, Value: gte[name]})
	}
	return match
}

// BuildPipeline 把查询翻译为聚合管道
func BuildPipeline(q Query) (mongo.Pipeline, error) {
	if q.Table == "" {
		return nil, fmt.Errorf("查询缺少表名")
	}

	pipeline := mongo.Pipeline{}
	if match := matchStage(q); len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	lookups, err := lookupStages(q.Table, q.Includes)
	if err != nil {
		return nil, err
	}
	pipeline = append(pipeline, lookups...)

	if q.OrderBy != "" {
		dir := -1
		if q.Ascending {
			dir = 1
		}
		sort := bson.D{{Key: fieldName(q.OrderBy), Value: dir}}
		if fieldName(q.OrderBy) != "_id" {
			sort = append(sort, bson.E{Key: "_id", Value: dir})
		}
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}

	if len(q.Columns) > 0 {
		projection := bson.D{}
		seen := map[string]bool{"_id": true}
		for _, col := range q.Columns {
			name := fieldName(col)
			if seen[name] {
				continue
			}
			seen[name] = true
			projection = append(projection, bson.E{Key: name, Value: 1})
		}
		for _, rel := range topLevel(q.Includes) {
			if !seen[rel] {
				seen[rel] = true
				projection = append(projection, bson.E{Key: rel, Value: 1})
			}
		}
		if len(projection) > 0 {
			pipeline = append(pipeline, bson.D{{Key: "$project", Value: projection}})
		}
	}

	return pipeline, nil
}

// topLevel 取关联路径的第一级并去重
func topLevel(includes []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, inc := range includes {
		head := strings.SplitN(inc, ".", 2)[0]
		if !seen[head] {
			seen[head] = true
			out = append(out, head)
		}
	}
	return out
}
