package service

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/BerniceZTT/client_crm/events"
	"github.com/BerniceZTT/client_crm/models"
	"github.com/BerniceZTT/client_crm/repository"
	"github.com/BerniceZTT/client_crm/storage"
	"github.com/BerniceZTT/client_crm/utils"
)

func TestUploadFile(t *testing.T) {
	h := newHarness()
	h.gw.rows[repository.ClientsTable] = []models.Client{{ID: "c1"}}
	user := &utils.LoginUser{ID: "u1"}

	record, err := h.svc.UploadFile(context.Background(), user, UploadInput{
		ClientID:    "c1",
		FileName:    "contract.pdf",
		FileType:    models.FileTypeContract,
		ContentType: "application/pdf",
		Size:        7,
		Content:     strings.NewReader("%PDF-1."),
	})
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}

	wantPath := "c1/1792337400000-contract.pdf"
	if record.FilePath != wantPath {
		t.Errorf("FilePath = %q, want %q", record.FilePath, wantPath)
	}
	if *record.FileSize != 7 || *record.UploadedBy != "u1" || record.FileType != models.FileTypeContract {
		t.Errorf("record = %+v", record)
	}

	rc, err := h.blobs.Download(context.Background(), "client-files", wantPath)
	if err != nil {
		t.Fatalf("blob missing: %v", err)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF-1." {
		t.Errorf("blob content = %q", data)
	}
	if types := h.pub.types(); len(types) != 1 || types[0] != events.FileUploaded {
		t.Errorf("events = %v", types)
	}
}

func TestUploadFileDefaultsType(t *testing.T) {
	h := newHarness()
	h.gw.rows[repository.ClientsTable] = []models.Client{{ID: "c1"}}

	record, err := h.svc.UploadFile(context.Background(), nil, UploadInput{ClientID: "c1", FileName: "a.txt", Content: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if record.FileType != models.FileTypeDocument || record.UploadedBy != nil {
		t.Errorf("record = %+v", record)
	}
}

func TestUploadFileValidation(t *testing.T) {
	tests := []UploadInput{
		{FileName: "a.txt", Content: strings.NewReader("x")},
		{ClientID: "c1", Content: strings.NewReader("x")},
		{ClientID: "c1", FileName: "a.txt", FileType: "video", Content: strings.NewReader("x")},
		{ClientID: "c1", FileName: "a.txt"},
	}
	for i, in := range tests {
		h := newHarness()
		if _, err := h.svc.UploadFile(context.Background(), nil, in); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: error = %v, want ErrValidation", i, err)
		}
	}
}

func TestUploadFileRemovesBlobWhenInsertFails(t *testing.T) {
	h := newHarness()
	h.gw.rows[repository.ClientsTable] = []models.Client{{ID: "c1"}}
	h.gw.writeErr = errors.New("request failed")

	_, err := h.svc.UploadFile(context.Background(), nil, UploadInput{ClientID: "c1", FileName: "a.txt", Content: strings.NewReader("x")})
	if err == nil {
		t.Fatal("expected error")
	}
	if h.blobs.Len() != 0 {
		t.Error("orphan blob left behind")
	}
}

func TestDownloadFile(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	h.gw.rows[repository.FilesTable] = []models.FileRecord{{ID: "f1", FileName: "a.txt", FilePath: "c1/1-a.txt"}}
	h.blobs.Upload(ctx, "client-files", "c1/1-a.txt", strings.NewReader("hello"), 5, "text/plain")

	record, rc, err := h.svc.DownloadFile(ctx, "f1")
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if record.FileName != "a.txt" || string(data) != "hello" {
		t.Errorf("record=%+v data=%q", record, data)
	}
}

func TestDownloadFileMissingBlob(t *testing.T) {
	h := newHarness()
	h.gw.rows[repository.FilesTable] = []models.FileRecord{{ID: "f1", FilePath: "c1/1-gone.txt"}}

	if _, _, err := h.svc.DownloadFile(context.Background(), "f1"); !errors.Is(err, storage.ErrObjectNotFound) {
		t.Fatalf("error = %v, want ErrObjectNotFound", err)
	}
}

func TestDeleteFile(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	h.gw.rows[repository.FilesTable] = []models.FileRecord{{ID: "f1", FilePath: "c1/1-a.txt"}}
	h.blobs.Upload(ctx, "client-files", "c1/1-a.txt", strings.NewReader("hello"), 5, "text/plain")

	if err := h.svc.DeleteFile(ctx, nil, "f1"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if h.blobs.Len() != 0 {
		t.Error("blob not removed")
	}
	if !reflect.DeepEqual(h.gw.deletes, []string{"files/f1"}) {
		t.Errorf("deletes = %v", h.gw.deletes)
	}
}

func TestFileManager(t *testing.T) {
	h := newHarness()
	h.gw.rows[repository.FilesTable] = []models.FileRecord{{ID: "f1"}}

	got, err := h.svc.FileManager(context.Background())
	if err != nil {
		t.Fatalf("FileManager: %v", err)
	}
	if len(got.Files) != 1 || got.Clients == nil {
		t.Errorf("got = %+v", got)
	}

	q := h.gw.queriesFor(repository.ClientsTable)[0]
	if q.OrderBy != "name" || !q.Ascending {
		t.Errorf("clients query = %+v", q)
	}
}
