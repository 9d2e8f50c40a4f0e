package logger

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
)

func TestInitWritesToFile(t *testing.T) {
    path := filepath.Join(t.TempDir(), "logs", "haberci.log")

    if err := Init(Config{Level: "debug", Output: path}); err != nil {
        t.Fatalf("Init returned error: %v", err)
    }

    With("ingest").Info().Str("title", "Haber").Msg("Added article")

    data, err := os.ReadFile(path)
    if err != nil {
        t.Fatalf("failed to read log file: %v", err)
    }
    line := string(data)
    for _, want := range []string{`"component":"ingest"`, `"title":"Haber"`, `"message":"Added article"`} {
        if !strings.Contains(line, want) {
            t.Errorf("log line %q does not contain %s", line, want)
        }
    }
}
