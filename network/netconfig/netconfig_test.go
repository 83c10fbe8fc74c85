package netconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockref.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Backend != "local" {
		t.Errorf("backend = %q", cfg.Backend)
	}
	if cfg.AppName != "BlockRef" || cfg.AppVersion != "1.0.0" {
		t.Errorf("app identity = %q/%q", cfg.AppName, cfg.AppVersion)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
backend = "local"
account = "0x1111111111111111111111111111111111111111"
app_name = "BlockRef-Staging"

[local]
price_per_byte = "5"
balance = "100000"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Local.PricePerByte != "5" || cfg.Local.Balance != "100000" {
		t.Errorf("local = %+v", cfg.Local)
	}
	if cfg.AppName != "BlockRef-Staging" {
		t.Errorf("app_name override lost: %q", cfg.AppName)
	}
	// Unset keys keep their defaults.
	if cfg.AppVersion != "1.0.0" {
		t.Errorf("app_version default lost: %q", cfg.AppVersion)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(""); err == nil {
		t.Error("empty path accepted")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("missing file accepted")
	}
	if _, err := LoadFile(writeConfig(t, `backend = "carrier-pigeon"`)); err == nil {
		t.Error("unknown backend accepted")
	}
	if _, err := LoadFile(writeConfig(t, `backend = "grpc"`)); err == nil {
		t.Error("grpc backend without target accepted")
	}
	if _, err := LoadFile(writeConfig(t, `backend = "http"`)); err == nil {
		t.Error("http backend without node_url accepted")
	}
}

func TestOpen_LocalBackend(t *testing.T) {
	cfg := Default()
	cfg.Local.Balance = "123456"

	client, closer, err := cfg.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closer()

	balance, err := client.Balance(context.Background())
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if balance != "123456" {
		t.Fatalf("balance = %q, want configured starting balance", balance)
	}
}

func TestOpen_LocalDirBacked(t *testing.T) {
	cfg := Default()
	cfg.Local.Dir = filepath.Join(t.TempDir(), "blobs")
	cfg.Local.Balance = "1000000000"

	client, closer, err := cfg.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closer()

	receipt, err := client.Upload(context.Background(), []byte("persisted"), nil)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if receipt.ID == "" {
		t.Fatal("no content id")
	}
	if _, err := os.Stat(cfg.Local.Dir); err != nil {
		t.Fatalf("blob directory not created: %v", err)
	}
}

func TestOpen_RejectsInvalidConfig(t *testing.T) {
	cfg := Config{Backend: "grpc"}
	if _, _, err := cfg.Open(); err == nil {
		t.Fatal("Open accepted a config that fails validation")
	}
}
