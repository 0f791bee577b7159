package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scriptgen/internal/analysis"
	"scriptgen/internal/llm"
	"scriptgen/internal/response"
)

type mockClient struct {
	response string
	err      error
	lastMsgs []llm.Message
}

func (m *mockClient) Generate(ctx context.Context, messages []llm.Message) (llm.Response, error) {
	m.lastMsgs = messages
	if m.err != nil {
		return llm.Response{}, m.err
	}
	return llm.Response{Content: m.response}, nil
}

func TestGenerator_Generate(t *testing.T) {
	client := &mockClient{
		response: "=== FILENAME: main.py ===\nprint('hello')\n=== FILENAME: utils.py ===\ndef helper():\n    pass\n",
	}
	gen := NewGenerator(client, NewStore(t.TempDir()))

	result := gen.Generate(context.Background(), "make a script", analysis.LanguagePython)

	if !result.Success {
		t.Fatalf("Expected success, got error: %s", result.Error)
	}
	if len(result.Files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(result.Files))
	}
	if result.RawResponse != client.response {
		t.Error("Expected raw response preserved in result")
	}

	if len(client.lastMsgs) != 2 || client.lastMsgs[0].Role != "system" || client.lastMsgs[1].Role != "user" {
		t.Errorf("Expected system+user messages, got %d messages", len(client.lastMsgs))
	}
}

func TestGenerator_LLMFailure(t *testing.T) {
	client := &mockClient{err: errors.New("quota exceeded")}
	gen := NewGenerator(client, NewStore(t.TempDir()))

	result := gen.Generate(context.Background(), "make a script", analysis.LanguagePython)

	if result.Success {
		t.Fatal("Expected failure result")
	}
	if !strings.Contains(result.Error, "quota exceeded") {
		t.Errorf("Expected underlying message in error, got %q", result.Error)
	}
}

func TestGenerator_GenerateAndSave(t *testing.T) {
	dir := t.TempDir()
	client := &mockClient{
		response: "=== FILENAME: main.py ===\nprint('hello')\n",
	}
	gen := NewGenerator(client, NewStore(dir))

	result := gen.GenerateAndSave(context.Background(), "make a script", analysis.LanguagePython, "demo")

	if !result.Success {
		t.Fatalf("Expected success, got: %s", result.Error)
	}
	if len(result.SavedFiles) != 1 {
		t.Fatalf("Expected 1 saved file, got %d", len(result.SavedFiles))
	}

	content, err := os.ReadFile(filepath.Join(dir, "demo", "main.py"))
	if err != nil {
		t.Fatalf("Expected file written: %v", err)
	}
	if string(content) != "print('hello')" {
		t.Errorf("Unexpected file content: %q", content)
	}
}

func TestRefactorer_Refactor(t *testing.T) {
	client := &mockClient{
		response: "The refactoring extracts one helper and adds error handling around the whole entry point.\n=== FILENAME: main.py ===\nprint('ok')\n",
	}
	ref := NewRefactorer(client, NewStore(t.TempDir()))

	result := ref.Refactor(context.Background(), "x = 1\nexcept:\n", analysis.LanguagePython, "old.py")

	if !result.Success {
		t.Fatalf("Expected success, got: %s", result.Error)
	}
	if result.Profile == nil {
		t.Fatal("Expected source profile in result")
	}

	found := false
	for _, f := range result.Profile.ComplexityFlags {
		if f == "Bare except clauses found" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected bare except flag in profile, got %v", result.Profile.ComplexityFlags)
	}

	if len(result.Files) != 2 {
		t.Fatalf("Expected documentation + code records, got %d", len(result.Files))
	}
	if result.Files[0].Kind != response.KindDocumentation {
		t.Errorf("Expected documentation record first, got %s", result.Files[0].Kind)
	}
}

func TestRefactorer_RefactorFileUnsupportedExtension(t *testing.T) {
	ref := NewRefactorer(&mockClient{}, NewStore(t.TempDir()))

	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := ref.RefactorFile(context.Background(), path)

	if result.Success {
		t.Fatal("Expected failure for unsupported extension")
	}
	if !strings.Contains(result.Error, "unsupported file type") {
		t.Errorf("Unexpected error: %q", result.Error)
	}
}

func TestRefactorer_RefactorFileMissing(t *testing.T) {
	ref := NewRefactorer(&mockClient{}, NewStore(t.TempDir()))

	result := ref.RefactorFile(context.Background(), filepath.Join(t.TempDir(), "missing.py"))

	if result.Success {
		t.Fatal("Expected failure for missing file")
	}
}

func TestRefactorer_RefactorFile(t *testing.T) {
	client := &mockClient{response: "```python\nx = 1\n```"}
	ref := NewRefactorer(client, NewStore(t.TempDir()))

	path := filepath.Join(t.TempDir(), "script.py")
	if err := os.WriteFile(path, []byte("x=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := ref.RefactorFile(context.Background(), path)

	if !result.Success {
		t.Fatalf("Expected success, got: %s", result.Error)
	}
	if len(result.Files) != 1 || result.Files[0].Filename != "refactored_code.py" {
		t.Errorf("Unexpected files: %+v", result.Files)
	}
}
