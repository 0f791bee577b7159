package response

import (
	"regexp"
	"strings"
	"unicode"

	"scriptgen/internal/analysis"
)

// Kind определяет тип извлеченного файла
type Kind string

const (
	KindDocumentation Kind = "documentation"
	KindCode          Kind = "code"
)

// Mode определяет режим конвейера, от него зависят имена файлов по умолчанию
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeRefactor Mode = "refactor"
)

// FileRecord — один именованный файл, извлеченный из ответа LLM.
// Порядок записей соответствует порядку появления в ответе.
type FileRecord struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Kind     Kind   `json:"type"`
}

var (
	delimiterRe  = regexp.MustCompile(`=== FILENAME: (.+?) ===`)
	fencedCodeRe = regexp.MustCompile("(?s)```\\w*\n(.*?)```")
	fenceBlockRe = regexp.MustCompile("(?s)```.*?```")
)

// Parse разбирает ответ LLM на упорядоченный список файлов.
// Ответ может быть пустым, оборванным или вовсе не следовать соглашению
// о разделителях — все три случая обрабатываются без ошибки.
func Parse(text string, language analysis.Language, mode Mode) []FileRecord {
	matches := delimiterRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return parseSingleFile(text, language, mode)
	}

	var files []FileRecord

	// Ведущий сегмент до первого разделителя — пояснительный текст
	leading := text[:matches[0][0]]
	if doc, ok := documentationRecord(leading, mode); ok {
		files = append(files, doc)
	}

	// Пары (имя файла, содержимое до следующего разделителя)
	for i, m := range matches {
		filename := strings.TrimSpace(text[m[2]:m[3]])
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		content := strings.TrimSpace(text[m[1]:end])
		if content == "" && i == len(matches)-1 {
			// Висячий разделитель в конце ответа: записи не будет
			continue
		}
		files = append(files, FileRecord{
			Filename: filename,
			Content:  Clean(content),
			Kind:     KindCode,
		})
	}

	return files
}

// parseSingleFile обрабатывает ответ без разделителей: самый длинный
// огороженный блок считается кодом, остальной текст — пояснением
func parseSingleFile(text string, language analysis.Language, mode Mode) []FileRecord {
	var files []FileRecord

	explanation, code := separateExplanationAndCode(text)

	if doc, ok := documentationRecord(explanation, mode); ok {
		files = append(files, doc)
	}

	codeName := "generated_script." + language.Extension()
	if mode == ModeRefactor {
		codeName = "refactored_code." + language.Extension()
	}
	files = append(files, FileRecord{
		Filename: codeName,
		Content:  Clean(code),
		Kind:     KindCode,
	})

	return files
}

// separateExplanationAndCode выделяет код из ответа без разделителей.
// При нескольких огороженных блоках кодом считается самый длинный,
// при равной длине — первый по порядку.
func separateExplanationAndCode(text string) (explanation, code string) {
	blocks := fencedCodeRe.FindAllStringSubmatch(text, -1)
	if len(blocks) == 0 {
		return "", strings.TrimSpace(text)
	}

	best := blocks[0][1]
	for _, b := range blocks[1:] {
		if len(b[1]) > len(best) {
			best = b[1]
		}
	}

	explanation = strings.TrimSpace(fenceBlockRe.ReplaceAllString(text, ""))
	return explanation, strings.TrimSpace(best)
}

// documentationRecord формирует запись с пояснением, если текст достаточно
// содержателен (более 50 непробельных символов без учета огороженных блоков)
func documentationRecord(text string, mode Mode) (FileRecord, bool) {
	stripped := strings.TrimSpace(fenceBlockRe.ReplaceAllString(text, ""))
	if nonWhitespaceLen(stripped) <= 50 {
		return FileRecord{}, false
	}

	if mode == ModeRefactor {
		return FileRecord{
			Filename: "REFACTORING_NOTES.md",
			Content:  "# Refactoring Notes\n\n" + stripped,
			Kind:     KindDocumentation,
		}, true
	}
	return FileRecord{
		Filename: "README.md",
		Content:  strings.TrimSpace(text),
		Kind:     KindDocumentation,
	}, true
}

func nonWhitespaceLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
