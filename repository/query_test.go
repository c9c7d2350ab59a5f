package repository

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func stageName(t *testing.T, stage bson.D) string {
	t.Helper()
	if len(stage) != 1 {
		t.Fatalf("stage has %d keys: %v", len(stage), stage)
	}
	return stage[0].Key
}

func TestBuildPipelineRemindersQuery(t *testing.T) {
	q := From(RemindersTable).
		Gte("reminder_date", "2026-10-18").
		Eq("is_sent", false).
		Include(ClientsTable, ProjectsTable).
		Order("reminder_date", true)

	pipeline, err := BuildPipeline(q)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}

	var names []string
	for _, stage := range pipeline {
		names = append(names, stageName(t, stage))
	}
	want := []string{"$match", "$lookup", "$unwind", "$lookup", "$unwind", "$sort"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("stages = %v, want %v", names, want)
	}

	match := pipeline[0][0].Value.(bson.D)
	wantMatch := bson.D{
		{Key: "is_sent", Value: false},
		{Key: "reminder_date", Value: bson.D{{Key: "$gte", Value: "2026-10-18"}}},
	}
	if !reflect.DeepEqual(match, wantMatch) {
		t.Fatalf("match = %v, want %v", match, wantMatch)
	}

	sort := pipeline[5][0].Value.(bson.D)
	wantSort := bson.D{{Key: "reminder_date", Value: 1}, {Key: "_id", Value: 1}}
	if !reflect.DeepEqual(sort, wantSort) {
		t.Fatalf("sort = %v, want %v", sort, wantSort)
	}
}

func TestBuildPipelineMapsIDColumn(t *testing.T) {
	pipeline, err := BuildPipeline(From(ClientsTable).Eq("id", "c1").Select("id", "name"))
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(pipeline) != 2 {
		t.Fatalf("expected match and project stages, got %v", pipeline)
	}

	match := pipeline[0][0].Value.(bson.D)
	if match[0].Key != "_id" || match[0].Value != "c1" {
		t.Fatalf("id filter not mapped to _id: %v", match)
	}

	projection := pipeline[1][0].Value.(bson.D)
	wantProjection := bson.D{{Key: "name", Value: 1}}
	if !reflect.DeepEqual(projection, wantProjection) {
		t.Fatalf("projection = %v, want %v", projection, wantProjection)
	}
}

func TestBuildPipelineProjectionKeepsIncludes(t *testing.T) {
	q := From(ProjectsTable).Select("id", "status", "total_cost").Include(PaymentsTable)
	pipeline, err := BuildPipeline(q)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}

	last := pipeline[len(pipeline)-1]
	if stageName(t, last) != "$project" {
		t.Fatalf("last stage = %s", stageName(t, last))
	}
	projection := last[0].Value.(bson.D)
	wantProjection := bson.D{
		{Key: "status", Value: 1},
		{Key: "total_cost", Value: 1},
		{Key: "payments", Value: 1},
	}
	if !reflect.DeepEqual(projection, wantProjection) {
		t.Fatalf("projection = %v, want %v", projection, wantProjection)
	}
}

func TestBuildPipelineOneToManyIsNotUnwound(t *testing.T) {
	pipeline, err := BuildPipeline(From(ProjectsTable).Include(PaymentsTable))
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(pipeline) != 1 || stageName(t, pipeline[0]) != "$lookup" {
		t.Fatalf("unexpected pipeline %v", pipeline)
	}

	lookup := pipeline[0][0].Value.(bson.D)
	let := lookup[1].Value.(bson.M)
	if let["key"] != "$_id" {
		t.Fatalf("let = %v", let)
	}
	if lookup[3].Value != PaymentsTable {
		t.Fatalf("as = %v", lookup[3].Value)
	}
}

func TestBuildPipelineNestedInclude(t *testing.T) {
	pipeline, err := BuildPipeline(From(PaymentsTable).Include("projects.clients"))
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(pipeline) != 2 {
		t.Fatalf("expected lookup and unwind, got %d stages", len(pipeline))
	}

	lookup := pipeline[0][0].Value.(bson.D)
	if lookup[0].Value != ProjectsTable {
		t.Fatalf("from = %v", lookup[0].Value)
	}
	sub := lookup[2].Value.(mongo.Pipeline)
	if len(sub) != 3 {
		t.Fatalf("sub pipeline should match, lookup clients and unwind: %v", sub)
	}
	inner := sub[1][0].Value.(bson.D)
	if inner[0].Value != ClientsTable {
		t.Fatalf("nested from = %v", inner[0].Value)
	}
}

func TestBuildPipelineInFilter(t *testing.T) {
	pipeline, err := BuildPipeline(From(PaymentsTable).Eq("project_id", []string{"p1", "p2"}))
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	match := pipeline[0][0].Value.(bson.D)
	want := bson.M{"$in": []string{"p1", "p2"}}
	if !reflect.DeepEqual(match[0].Value, want) {
		t.Fatalf("filter = %v, want %v", match[0].Value, want)
	}
}

func TestBuildPipelineErrors(t *testing.T) {
	if _, err := BuildPipeline(Query{}); err == nil {
		t.Error("expected error for missing table")
	}
	if _, err := BuildPipeline(From(NotesTable).Include(PaymentsTable)); err == nil {
		t.Error("expected error for unknown relation")
	}
	if _, err := BuildPipeline(From(PaymentsTable).Include("projects.notes")); err == nil {
		t.Error("expected error for unknown nested relation")
	}
}

func TestQueryBuilderDoesNotShareState(t *testing.T) {
	base := From(ProjectsTable).Eq("client_id", "c1")
	a := base.Eq("status", "Ongoing")
	b := base.Eq("status", "Completed")

	if len(base.EqConds) != 1 {
		t.Fatalf("base mutated: %v", base.EqConds)
	}
	if a.EqConds[1].Value != "Ongoing" || b.EqConds[1].Value != "Completed" {
		t.Fatalf("derived queries share conditions: %v %v", a.EqConds, b.EqConds)
	}
}
