package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveHostKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := resolveHostKey("")
	if err != nil {
		t.Fatalf("resolveHostKey() failed: %v", err)
	}
	if want := filepath.Join(home, ".arcade", "host_key"); got != want {
		t.Errorf("default key = %q, want %q", got, want)
	}
	if info, err := os.Stat(filepath.Dir(got)); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}

	custom := filepath.Join(t.TempDir(), "keys", "arcade_ed25519")
	if got, err := resolveHostKey(custom); err != nil || got != custom {
		t.Errorf("resolveHostKey(%q) = %q, %v", custom, got, err)
	}
}

func TestNewSSHServer(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.DBPath = filepath.Join(dir, "arcade.db")
	cfg.TickRate = 0

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	t.Cleanup(func() { _ = srv.Shutdown() })

	if srv.store == nil {
		t.Error("store should be open")
	}
	if srv.config.TickRate <= 0 {
		t.Error("tick rate should fall back to the default")
	}
	if srv.ActiveSessions() != 0 || srv.Addr() != cfg.Address {
		t.Errorf("active = %d, addr = %q", srv.ActiveSessions(), srv.Addr())
	}
}
