package config

import "testing"

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "todo",
		Password: "secret",
		Name:     "tododeck",
		SSLMode:  "require",
	}

	want := "host=db.internal user=todo password=secret dbname=tododeck port=5433 sslmode=require"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestServerAddr(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 9090}
	if got := cfg.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9090", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TODODECK_TEST_PORT", "1234")
	if got := getEnvInt("TODODECK_TEST_PORT", 80); got != 1234 {
		t.Errorf("getEnvInt() = %d, want 1234", got)
	}

	t.Setenv("TODODECK_TEST_PORT", "not-a-number")
	if got := getEnvInt("TODODECK_TEST_PORT", 80); got != 80 {
		t.Errorf("getEnvInt() with garbage = %d, want default 80", got)
	}

	if got := getEnvInt("TODODECK_TEST_UNSET", 80); got != 80 {
		t.Errorf("getEnvInt() unset = %d, want default 80", got)
	}
}
