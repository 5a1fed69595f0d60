package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const base = `
telegram:
  token: "123:abc"
  admin_chat_id: 42
postgres:
  dsn: "postgres://localhost/catalog"
`

func TestLoadDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, base))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Telegram.AdminChatID != 42 {
		t.Errorf("AdminChatID = %d, want 42", c.Telegram.AdminChatID)
	}
	if c.Dialog.Backend != DialogMemory {
		t.Errorf("Dialog.Backend = %q, want memory", c.Dialog.Backend)
	}
	if c.Dialog.TTL != 24*time.Hour {
		t.Errorf("Dialog.TTL = %s, want 24h", c.Dialog.TTL)
	}
	if c.Catalog.SearchLimit != 20 {
		t.Errorf("SearchLimit = %d, want 20", c.Catalog.SearchLimit)
	}
	if re, _ := c.PhoneRegexp(); re != nil {
		t.Error("empty phone_pattern must disable format checks")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_TELEGRAM_TOKEN", "999:env")
	t.Setenv("APP_DIALOG_BACKEND", "redis")
	t.Setenv("APP_DIALOG_TTL", "90m")

	c, err := Load(writeConfig(t, base))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Telegram.Token != "999:env" {
		t.Errorf("Token = %q, want env value", c.Telegram.Token)
	}
	if c.Dialog.Backend != DialogRedis {
		t.Errorf("Backend = %q, want redis", c.Dialog.Backend)
	}
	if c.Dialog.TTL != 90*time.Minute {
		t.Errorf("TTL = %s, want 1h30m", c.Dialog.TTL)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		extra   string
		wantErr string
	}{
		{"backend", "dialog:\n  backend: etcd\n", "dialog.backend"},
		{"phone pattern", "inquiry:\n  phone_pattern: \"[0-9\"\n", "phone_pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, base+tt.extra))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRequiresToken(t *testing.T) {
	_, err := Load(writeConfig(t, "postgres:\n  dsn: \"x\"\n"))
	if err == nil || !strings.Contains(err.Error(), "telegram.token") {
		t.Fatalf("err = %v, want missing token", err)
	}
}
