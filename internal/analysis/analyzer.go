package analysis

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Language определяет язык исходного кода
type Language string

const (
	LanguagePython     Language = "python"
	LanguageTypeScript Language = "typescript"
	LanguageOther      Language = "other"
)

// Extension возвращает расширение файла для языка
func (l Language) Extension() string {
	if l == LanguagePython {
		return "py"
	}
	return "ts"
}

// LanguageForFile определяет язык по расширению файла
func LanguageForFile(path string) (Language, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return LanguagePython, nil
	case ".ts", ".js":
		return LanguageTypeScript, nil
	default:
		return LanguageOther, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// SourceProfile содержит результат структурного анализа исходного кода.
// Строится один раз на вызов анализа и далее не изменяется.
type SourceProfile struct {
	Language        Language `json:"language"`
	LineCount       int      `json:"lines_of_code"`
	Imports         []string `json:"imports"`
	Functions       []string `json:"functions"`
	Classes         []string `json:"classes"`
	ComplexityFlags []string `json:"complexity_indicators"`
}

var (
	importRe   = regexp.MustCompile(`^import\s+(.+)$`)
	fromRe     = regexp.MustCompile(`^from\s+([\w.]+)\s+import\s+(.+)$`)
	defRe      = regexp.MustCompile(`^\s*def\s+(\w+)\s*\(`)
	classRe    = regexp.MustCompile(`^\s*class\s+(\w+)`)
	longFuncRe = regexp.MustCompile(`def \w+\(.*\):(?:\s*\n)*(?:\s{4,}.*\n){20,}`)
)

// Analyze анализирует исходный код и возвращает профиль структуры.
// Детерминирован и не имеет побочных эффектов.
func Analyze(source string, language Language) *SourceProfile {
	profile := &SourceProfile{
		Language:  language,
		LineCount: len(strings.Split(source, "\n")),
	}

	if language == LanguagePython {
		if pythonSyntaxLooksValid(source) {
			collectPythonStructure(source, profile)
		} else {
			// Мягкая деградация: фиксируем флаг, имена не собираем
			profile.ComplexityFlags = append(profile.ComplexityFlags, "Syntax errors present")
		}
	}

	// Общие индикаторы сложности
	if profile.LineCount > 500 {
		profile.ComplexityFlags = append(profile.ComplexityFlags, "Large file (>500 lines)")
	}
	if len(profile.Functions) > 20 {
		profile.ComplexityFlags = append(profile.ComplexityFlags, "Many functions (>20)")
	}
	if len(profile.Classes) > 10 {
		profile.ComplexityFlags = append(profile.ComplexityFlags, "Many classes (>10)")
	}

	// Типичные code smells
	if strings.Contains(source, "TODO") || strings.Contains(source, "FIXME") {
		profile.ComplexityFlags = append(profile.ComplexityFlags, "Contains TODO/FIXME comments")
	}
	if strings.Contains(source, "except:") {
		profile.ComplexityFlags = append(profile.ComplexityFlags, "Bare except clauses found")
	}
	if longFuncRe.MatchString(source) {
		profile.ComplexityFlags = append(profile.ComplexityFlags, "Very long functions detected")
	}

	return profile
}

// collectPythonStructure собирает имена импортов, функций и классов в порядке файла
func collectPythonStructure(source string, profile *SourceProfile) {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := fromRe.FindStringSubmatch(trimmed); m != nil {
			names := splitImportNames(m[2])
			profile.Imports = append(profile.Imports, m[1]+"."+strings.Join(names, ", "))
			continue
		}
		if m := importRe.FindStringSubmatch(trimmed); m != nil {
			for _, name := range splitImportNames(m[1]) {
				profile.Imports = append(profile.Imports, name)
			}
			continue
		}
		if m := defRe.FindStringSubmatch(line); m != nil {
			profile.Functions = append(profile.Functions, m[1])
			continue
		}
		if m := classRe.FindStringSubmatch(line); m != nil {
			profile.Classes = append(profile.Classes, m[1])
		}
	}
}

// splitImportNames разбирает список имен в import-выражении, отбрасывая алиасы
func splitImportNames(list string) []string {
	var names []string
	for _, part := range strings.Split(list, ",") {
		name := strings.TrimSpace(part)
		if idx := strings.Index(name, " as "); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		if name != "" && name != "(" && name != ")" {
			names = append(names, strings.Trim(name, "()"))
		}
	}
	return names
}

// pythonSyntaxLooksValid выполняет поверхностную проверку синтаксиса:
// баланс скобок вне строк и комментариев. Настоящий парсер здесь не нужен —
// ошибка разбора лишь понижается до флага в профиле.
func pythonSyntaxLooksValid(source string) bool {
	depth := 0
	var quote string // активная строковая кавычка: ', ", ''' или """
	i := 0
	for i < len(source) {
		c := source[i]
		if quote != "" {
			if c == '\\' {
				i += 2
				continue
			}
			if strings.HasPrefix(source[i:], quote) {
				i += len(quote)
				quote = ""
				continue
			}
			// Одиночная кавычка не переживает конец строки
			if c == '\n' && len(quote) == 1 {
				return false
			}
			i++
			continue
		}
		switch c {
		case '#':
			for i < len(source) && source[i] != '\n' {
				i++
			}
			continue
		case '\'', '"':
			if strings.HasPrefix(source[i:], strings.Repeat(string(c), 3)) {
				quote = strings.Repeat(string(c), 3)
				i += 3
				continue
			}
			quote = string(c)
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth < 0 {
				return false
			}
		}
		i++
	}
	return depth == 0 && quote == ""
}
