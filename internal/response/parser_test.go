package response

import (
	"strings"
	"testing"

	"scriptgen/internal/analysis"
)

func TestParse_TwoDelimitedFiles(t *testing.T) {
	text := "=== FILENAME: a.py ===\nprint(1)\n=== FILENAME: b.py ===\nprint(2)\n"

	files := Parse(text, analysis.LanguagePython, ModeGenerate)
	if len(files) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(files))
	}

	if files[0].Filename != "a.py" || files[0].Content != "print(1)" {
		t.Errorf("Unexpected first record: %+v", files[0])
	}
	if files[1].Filename != "b.py" || files[1].Content != "print(2)" {
		t.Errorf("Unexpected second record: %+v", files[1])
	}
	for _, f := range files {
		if f.Kind != KindCode {
			t.Errorf("Expected code record, got %s for %s", f.Kind, f.Filename)
		}
	}
}

func TestParse_LeadingExplanationRefactorMode(t *testing.T) {
	explanation := "This refactoring splits the module into separate concerns and removes duplicated logic everywhere."
	text := explanation + "\n=== FILENAME: main.py ===\nprint('ok')\n"

	files := Parse(text, analysis.LanguagePython, ModeRefactor)
	if len(files) != 2 {
		t.Fatalf("Expected documentation + code records, got %d", len(files))
	}

	if files[0].Filename != "REFACTORING_NOTES.md" {
		t.Errorf("Expected REFACTORING_NOTES.md, got %s", files[0].Filename)
	}
	if files[0].Kind != KindDocumentation {
		t.Errorf("Expected documentation kind, got %s", files[0].Kind)
	}
	if !strings.HasPrefix(files[0].Content, "# Refactoring Notes\n\n") {
		t.Errorf("Expected refactoring notes heading, got %q", files[0].Content)
	}
}

func TestParse_LeadingExplanationGenerateMode(t *testing.T) {
	explanation := "This solution implements the requested automation flow with retries and structured reporting throughout."
	text := explanation + "\n=== FILENAME: run.ts ===\nconsole.log(1)\n"

	files := Parse(text, analysis.LanguageTypeScript, ModeGenerate)
	if len(files) != 2 {
		t.Fatalf("Expected documentation + code records, got %d", len(files))
	}
	if files[0].Filename != "README.md" {
		t.Errorf("Expected README.md in generate mode, got %s", files[0].Filename)
	}
	if strings.HasPrefix(files[0].Content, "# Refactoring Notes") {
		t.Errorf("Generate mode should not add a refactoring heading")
	}
}

func TestParse_ShortLeadingSegmentSkipped(t *testing.T) {
	text := "Here you go:\n=== FILENAME: a.py ===\nprint(1)\n"

	files := Parse(text, analysis.LanguagePython, ModeRefactor)
	if len(files) != 1 {
		t.Fatalf("Expected only the code record, got %d", len(files))
	}
	if files[0].Filename != "a.py" {
		t.Errorf("Expected a.py, got %s", files[0].Filename)
	}
}

func TestParse_LeadingSegmentFencesIgnoredForThreshold(t *testing.T) {
	// Огороженный код не должен учитываться при оценке содержательности
	lead := "Short note\n```python\n" + strings.Repeat("x = 1\n", 30) + "```\n"
	text := lead + "=== FILENAME: a.py ===\nprint(1)\n"

	files := Parse(text, analysis.LanguagePython, ModeRefactor)
	if len(files) != 1 {
		t.Fatalf("Expected no documentation record, got %d records", len(files))
	}
}

func TestParse_DanglingFilenameDropped(t *testing.T) {
	text := "=== FILENAME: a.py ===\nprint(1)\n=== FILENAME: dangling.py ==="

	files := Parse(text, analysis.LanguagePython, ModeGenerate)
	if len(files) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(files))
	}
	if files[0].Filename != "a.py" {
		t.Errorf("Expected a.py, got %s", files[0].Filename)
	}
}

func TestParse_DuplicateFilenamesKept(t *testing.T) {
	text := "=== FILENAME: a.py ===\nprint(1)\n=== FILENAME: a.py ===\nprint(2)\n"

	files := Parse(text, analysis.LanguagePython, ModeGenerate)
	if len(files) != 2 {
		t.Fatalf("Expected both records for duplicate filename, got %d", len(files))
	}
	if files[1].Content != "print(2)" {
		t.Errorf("Expected later record content preserved, got %q", files[1].Content)
	}
}

func TestParse_SingleFencedBlock(t *testing.T) {
	text := "```python\nx=1\n```"

	files := Parse(text, analysis.LanguagePython, ModeGenerate)
	if len(files) != 1 {
		t.Fatalf("Expected exactly 1 record, got %d", len(files))
	}
	if files[0].Filename != "generated_script.py" {
		t.Errorf("Expected generated_script.py, got %s", files[0].Filename)
	}
	if files[0].Content != "x=1" {
		t.Errorf("Expected content %q, got %q", "x=1", files[0].Content)
	}
}

func TestParse_SingleFileRefactorNaming(t *testing.T) {
	text := "```typescript\nconst x = 1;\n```"

	files := Parse(text, analysis.LanguageTypeScript, ModeRefactor)
	if len(files) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(files))
	}
	if files[0].Filename != "refactored_code.ts" {
		t.Errorf("Expected refactored_code.ts, got %s", files[0].Filename)
	}
}

func TestParse_LargestFencedBlockWins(t *testing.T) {
	text := "```\nshort\n```\nsome text\n```\nmuch longer block of code\n```"

	files := Parse(text, analysis.LanguagePython, ModeGenerate)
	var code *FileRecord
	for i := range files {
		if files[i].Kind == KindCode {
			code = &files[i]
		}
	}
	if code == nil {
		t.Fatal("Expected a code record")
	}
	if code.Content != "much longer block of code" {
		t.Errorf("Expected the longest block, got %q", code.Content)
	}
}

func TestParse_EqualBlocksFirstWins(t *testing.T) {
	text := "```\naaaa\n```\n```\nbbbb\n```"

	files := Parse(text, analysis.LanguagePython, ModeGenerate)
	if len(files) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(files))
	}
	if files[0].Content != "aaaa" {
		t.Errorf("Expected first block on tie, got %q", files[0].Content)
	}
}

func TestParse_NoFencesWholeResponseIsCode(t *testing.T) {
	text := "x = 1\ny = 2"

	files := Parse(text, analysis.LanguagePython, ModeGenerate)
	if len(files) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(files))
	}
	if files[0].Kind != KindCode || files[0].Content != "x = 1\ny = 2" {
		t.Errorf("Unexpected record: %+v", files[0])
	}
}

func TestParse_SingleFileExplanationOverThreshold(t *testing.T) {
	explanation := "The refactored version extracts helpers, adds typing and removes duplicated error handling paths."
	text := explanation + "\n```python\nx=1\n```"

	files := Parse(text, analysis.LanguagePython, ModeRefactor)
	if len(files) != 2 {
		t.Fatalf("Expected documentation + code, got %d", len(files))
	}
	if files[0].Kind != KindDocumentation || files[1].Kind != KindCode {
		t.Errorf("Unexpected record kinds: %s, %s", files[0].Kind, files[1].Kind)
	}
}

func TestParse_EmptyResponse(t *testing.T) {
	files := Parse("", analysis.LanguagePython, ModeGenerate)
	if len(files) != 1 {
		t.Fatalf("Expected 1 record for empty response, got %d", len(files))
	}
	if files[0].Content != "" {
		t.Errorf("Expected empty content, got %q", files[0].Content)
	}
}

func TestParse_ManyDelimitersAppearanceOrder(t *testing.T) {
	text := "=== FILENAME: one.py ===\na\n=== FILENAME: two.py ===\nb\n=== FILENAME: three.py ===\nc\n"

	files := Parse(text, analysis.LanguagePython, ModeGenerate)
	if len(files) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(files))
	}
	want := []string{"one.py", "two.py", "three.py"}
	for i, name := range want {
		if files[i].Filename != name {
			t.Errorf("Record %d: expected %s, got %s", i, name, files[i].Filename)
		}
	}
}
