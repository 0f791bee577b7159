package prompt

import (
	"fmt"
	"strings"

	"scriptgen/internal/analysis"
)

// GenerationSystemPrompt возвращает системный промпт для генерации скриптов
func GenerationSystemPrompt(language analysis.Language) string {
	return fmt.Sprintf(`You are an expert %[1]s developer specializing in automation testing and development tools.

Your task is to generate clean, well-structured, production-ready code based on user requirements.

GUIDELINES:
1. Write clean, readable, and maintainable code
2. Include proper error handling and logging
3. Add comprehensive docstrings and comments
4. Follow %[1]s best practices and conventions
5. Include type hints (Python) or proper typing (TypeScript)
6. Structure code with proper separation of concerns
7. Include import statements for all dependencies
8. Add example usage when appropriate
9. Consider edge cases and validation

OUTPUT FORMAT:
- Provide complete, runnable code
- If multiple files are needed, clearly separate them with "=== FILENAME: <name> ==="
- Include setup/installation instructions if needed
- Add brief explanation of the solution approach

Focus on creating production-ready code that can be used immediately without placeholder implementations.`, language)
}

// RefactoringSystemPrompt возвращает контекстный системный промпт для
// рефакторинга, параметризованный профилем анализируемого кода
func RefactoringSystemPrompt(language analysis.Language, profile *analysis.SourceProfile) string {
	return fmt.Sprintf(`You are an expert %[1]s code refactoring specialist with deep knowledge of software engineering best practices.

ANALYSIS OF CURRENT CODE:
- Language: %[1]s
- Lines of code: %[2]d
- Functions: %[3]d
- Classes: %[4]d
- Complexity indicators: %[5]s
- Imports detected: %[6]s

REFACTORING OBJECTIVES:
1. **Structure & Organization**: Break down large functions/classes into smaller, focused units
2. **Code Quality**: Eliminate code smells, improve readability, add proper error handling
3. **Maintainability**: Apply SOLID principles, design patterns, and clean architecture
4. **Documentation**: Add comprehensive docstrings, type hints, and meaningful comments
5. **Performance**: Optimize where possible without sacrificing readability
6. **Testing**: Make code more testable through dependency injection and modular design

SPECIFIC REFACTORING RULES:
DO:
- Preserve ALL existing functionality and behavior
- Keep all real imports and dependencies intact
- Split large files into logical modules when beneficial
- Extract reusable components and utilities
- Implement proper exception handling and logging
- Add type hints and comprehensive documentation
- Follow %[1]s conventions and best practices
- Create configuration files for constants and settings
- Use dependency injection for better testability

DON'T:
- Create mock classes or placeholder implementations
- Remove or change existing functionality
- Add external dependencies not already present
- Break backward compatibility
- Create overly complex abstractions

FILE ORGANIZATION:
If splitting into multiple files, use this format:
=== FILENAME: main_module.%[7]s ===
[main code]

=== FILENAME: config.%[7]s ===
[configuration constants]

=== FILENAME: utils.%[7]s ===
[utility functions]

=== FILENAME: models.%[7]s ===
[data models/classes]

RESPONSE FORMAT:
1. Brief explanation of refactoring approach and key improvements
2. Refactored code (single file or multiple files with clear separators)
3. Summary of changes made and benefits achieved`,
		language,
		profile.LineCount,
		len(profile.Functions),
		len(profile.Classes),
		FlagsSummary(profile),
		importsSummary(profile),
		language.Extension())
}

// RefactorUserPrompt оборачивает пользовательский код в запрос на рефакторинг
func RefactorUserPrompt(code string, language analysis.Language, filename string, profile *analysis.SourceProfile) string {
	if filename == "" {
		filename = "code." + language.Extension()
	}
	focus := FlagsSummary(profile)
	if len(profile.ComplexityFlags) == 0 {
		focus = "General code improvement"
	}
	return fmt.Sprintf("Please refactor the following %s code:\n\nFILENAME: %s\n\n```%s\n%s\n```\n\nFocus on the complexity indicators identified: %s\n\nPlease provide clean, production-ready refactored code that maintains all existing functionality.",
		language, filename, language, code, focus)
}

// GenerationUserPrompt оборачивает текстовый запрос пользователя
func GenerationUserPrompt(request string) string {
	return "USER REQUEST:\n" + request
}

// FlagsSummary возвращает сводку индикаторов сложности для промпта
func FlagsSummary(profile *analysis.SourceProfile) string {
	if len(profile.ComplexityFlags) == 0 {
		return "None detected"
	}
	return strings.Join(profile.ComplexityFlags, ", ")
}

// importsSummary возвращает первые 10 импортов с маркером усечения
func importsSummary(profile *analysis.SourceProfile) string {
	imports := profile.Imports
	suffix := ""
	if len(imports) > 10 {
		imports = imports[:10]
		suffix = "..."
	}
	return strings.Join(imports, ", ") + suffix
}
