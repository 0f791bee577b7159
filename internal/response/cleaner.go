package response

import (
	"regexp"
	"strings"
	"unicode"
)

var fenceMarkerRe = regexp.MustCompile("```\\w*\n?")

// Clean убирает из извлеченного содержимого остатки markdown-разметки и
// нормализует пустые строки. Идемпотентна: Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	// Открывающие и закрывающие маркеры огороженных блоков
	text = fenceMarkerRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "```", "")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	blanks := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			// Не более двух пустых строк подряд
			if blanks <= 2 {
				cleaned = append(cleaned, "")
			}
			continue
		}
		blanks = 0
		cleaned = append(cleaned, strings.TrimRightFunc(line, unicode.IsSpace))
	}

	// Хвостовые пустые строки не сохраняем
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	return strings.Join(cleaned, "\n")
}
