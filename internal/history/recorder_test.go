package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileRecorder_AppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "history.jsonl")
	rec, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("NewFileRecorder failed: %v", err)
	}

	events := []Event{
		{Timestamp: time.Now().UTC(), Mode: "generate", Language: "python", Project: "demo", FileCount: 3, Success: true},
		{Timestamp: time.Now().UTC(), Mode: "refactor", Language: "typescript", Success: false, Error: "llm request failed"},
	}
	for _, ev := range events {
		if err := rec.AppendEvent(ev); err != nil {
			t.Fatalf("AppendEvent failed: %v", err)
		}
	}

	loaded, err := rec.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(loaded))
	}
	if loaded[0].Mode != "generate" || loaded[0].FileCount != 3 || !loaded[0].Success {
		t.Errorf("Unexpected first event: %+v", loaded[0])
	}
	if loaded[1].Mode != "refactor" || loaded[1].Error != "llm request failed" {
		t.Errorf("Unexpected second event: %+v", loaded[1])
	}
}

func TestFileRecorder_SkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	rec, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("NewFileRecorder failed: %v", err)
	}

	if err := rec.AppendEvent(Event{Mode: "generate", Success: true}); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not valid json\n\n"); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	if err := rec.AppendEvent(Event{Mode: "refactor", Success: true}); err != nil {
		t.Fatal(err)
	}

	loaded, err := rec.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Errorf("Expected corrupt line skipped, got %d events", len(loaded))
	}
}

func TestFileRecorder_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	rec, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("NewFileRecorder failed: %v", err)
	}

	loaded, err := rec.LoadEvents()
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("Expected no events, got %d", len(loaded))
	}
}
