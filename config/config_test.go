package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_DB", "crm_test")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_KEY", "s3cr3t-from-env")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("STORAGE_BUCKET", "files")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 9090 || cfg.MongoDB != "crm_test" || cfg.Debug {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.CORSOrigins)
	}
	if cfg.Storage.Bucket != "files" {
		t.Fatalf("unexpected bucket %q", cfg.Storage.Bucket)
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crm.yaml")
	content := "port: 7070\nmongo_db: from_file\nstorage:\n  bucket: file-bucket\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("MONGO_DB", "from_env")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 7070 {
		t.Fatalf("port = %d, want 7070", cfg.Port)
	}
	if cfg.MongoDB != "from_env" {
		t.Fatalf("env should win over file, got %q", cfg.MongoDB)
	}
	if cfg.Storage.Bucket != "file-bucket" {
		t.Fatalf("bucket = %q", cfg.Storage.Bucket)
	}
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := Default()
	cfg.Port = 0
	cfg.JWTKey = ""
	cfg.AMQP.URL = "http://broker"
	cfg.Storage.Endpoint = "minio:9000"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"端口无效", "JWT_KEY", "AMQP_URL 协议无效", "访问密钥"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestInvalidPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "abc")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}

func TestReleaseRejectsDefaultJWTKey(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("JWT_KEY", "")

	_, err := LoadConfig()
	if err == nil || !strings.Contains(err.Error(), "JWT_KEY") {
		t.Fatalf("expected JWT_KEY error, got %v", err)
	}

	cfg := Default()
	cfg.Debug = false
	cfg.JWTKey = "s3cr3t"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("explicit key in release: %v", err)
	}
}

func TestNonNumericEnvIsReported(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"REMINDER_HOUR", "eight"},
		{"MAX_UPLOAD_MB", "20MB"},
		{"STORAGE_USE_SSL", "maybe"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := LoadConfig()
			if err == nil || !strings.Contains(err.Error(), tc.key) {
				t.Fatalf("expected error naming %s, got %v", tc.key, err)
			}
		})
	}
}
