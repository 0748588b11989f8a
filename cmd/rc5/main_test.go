package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v2"
)

func TestMain(m *testing.M) {
	home, err := os.MkdirTemp("", "rc5-home")
	if err != nil {
		panic(err)
	}
	os.Setenv("RC5_HOME", home)
	code := m.Run()
	os.RemoveAll(home)
	os.Exit(code)
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"rc5"}, args...))
	return out.String(), err
}

func TestEncryptHexArgument(t *testing.T) {
	out, err := run(t, "", "--no-journal", "-p", "RC5-32/20/16", "-k", "000102030405060708090A0B0C0D0E0F",
		"encrypt", "0001020304050607")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if strings.TrimSpace(out) != "2A0EDC0E9431FF73" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDecryptStdinHex(t *testing.T) {
	out, err := run(t, "23A8 D72E\n", "--no-journal", "-p", "RC5-16/16/8", "-k", "0001020304050607",
		"decrypt", "--hex")
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if strings.TrimSpace(out) != "00010203" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestEncryptFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plain.bin")
	enc := filepath.Join(dir, "cipher.bin")
	dec := filepath.Join(dir, "back.bin")
	key := filepath.Join(dir, "key.bin")
	data := bytes.Repeat([]byte("0123456789abcdef"), 4)
	if err := os.WriteFile(in, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(key, []byte("sixteen byte key"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "--no-journal", "--key-file", key, "encrypt", "-i", in, "-o", enc); err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := run(t, "", "--no-journal", "--key-file", key, "decrypt", "-i", enc, "-o", dec); err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	back, err := os.ReadFile(dec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, data) {
		t.Fatalf("round trip through files failed")
	}
}

func TestEncryptRejectsUnaligned(t *testing.T) {
	_, err := run(t, "", "--no-journal", "-k", "000102030405060708090A0B0C0D0E0F", "encrypt", "000102")
	if err == nil || !strings.Contains(err.Error(), "block size") {
		t.Fatalf("expected block size error, got %v", err)
	}
}

func TestEncryptRejectsWrongKey(t *testing.T) {
	_, err := run(t, "", "--no-journal", "-k", "0001", "encrypt", "0001020304050607")
	if err == nil || !strings.Contains(err.Error(), "key must be 16 bytes, got 2") {
		t.Fatalf("expected key size error, got %v", err)
	}
}

func TestSelftest(t *testing.T) {
	out, err := run(t, "", "--no-journal", "selftest")
	if err != nil {
		t.Fatalf("selftest: %v", err)
	}
	if strings.Count(out, " ok") != 5 {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestLogsJournal(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	if _, err := run(t, "", "--log-db", db, "-p", "RC5-8/12/4", "-k", "00010203", "encrypt", "0001"); err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	out, err := run(t, "", "--log-db", db, "logs", "-n", "5")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if !strings.Contains(out, `"op":"encrypt"`) || !strings.Contains(out, "RC5-8/12/4") {
		t.Fatalf("journal does not show the operation:\n%s", out)
	}
	if strings.Contains(out, "00010203") {
		t.Fatalf("journal leaked key material:\n%s", out)
	}
}

func TestParseTimeSpec(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	ts, err := parseTimeSpec("90m", now)
	if err != nil || !ts.Equal(now.Add(-90*time.Minute)) {
		t.Fatalf("relative spec = %v, %v", ts, err)
	}
	ts, err = parseTimeSpec("2026-10-17T08:00:00Z", now)
	if err != nil || !ts.Equal(time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("absolute spec = %v, %v", ts, err)
	}
	if _, err := parseTimeSpec("yesterday", now); err == nil {
		t.Fatalf("expected error for bad spec")
	}
}

func TestBench(t *testing.T) {
	csv := filepath.Join(t.TempDir(), "bench.csv")
	out, err := run(t, "", "--no-journal", "-p", "RC5-16/8/8", "bench", "-n", "5", "-s", "64", "--csv", csv)
	if err != nil {
		t.Fatalf("bench: %v", err)
	}
	for _, want := range []string{"Key Schedule", "Encrypt", "Decrypt", "RC5-16/8/8"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report is missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(csv); err != nil {
		t.Fatalf("csv not written: %v", err)
	}
}

func TestKeyFileTrailingNewline(t *testing.T) {
	key := filepath.Join(t.TempDir(), "key.txt")
	if err := os.WriteFile(key, []byte("sixteen byte key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "", "--no-journal", "--key-file", key, "encrypt", "0001020304050607")
	if err == nil || !strings.Contains(err.Error(), "got 17") || !strings.Contains(err.Error(), "raw bytes") {
		t.Fatalf("expected raw key file hint, got %v", err)
	}
}
