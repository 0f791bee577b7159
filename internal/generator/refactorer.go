package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"scriptgen/internal/analysis"
	"scriptgen/internal/history"
	"scriptgen/internal/llm"
	"scriptgen/internal/prompt"
	"scriptgen/internal/response"
)

// Refactorer переписывает существующий код через LLM, опираясь на
// структурный профиль исходника
type Refactorer struct {
	llmClient llm.Client
	store     *Store
	recorder  history.Recorder
}

func NewRefactorer(llmClient llm.Client, store *Store) *Refactorer {
	return &Refactorer{
		llmClient: llmClient,
		store:     store,
	}
}

// SetRecorder подключает журнал прогонов
func (r *Refactorer) SetRecorder(rec history.Recorder) {
	r.recorder = rec
}

// Refactor анализирует код, строит контекстный промпт и разбирает ответ
func (r *Refactorer) Refactor(ctx context.Context, code string, language analysis.Language, filename string) *Result {
	profile := analysis.Analyze(code, language)
	log.Printf("📊 Analyzed %s source: %d lines, %d functions, %d classes, flags: %s",
		language, profile.LineCount, len(profile.Functions), len(profile.Classes), prompt.FlagsSummary(profile))

	messages := []llm.Message{
		{Role: "system", Content: prompt.RefactoringSystemPrompt(language, profile)},
		{Role: "user", Content: prompt.RefactorUserPrompt(code, language, filename, profile)},
	}

	resp, err := r.llmClient.Generate(ctx, messages)
	if err != nil {
		res := failure(err)
		res.Profile = profile
		return res
	}

	files := response.Parse(resp.Content, language, response.ModeRefactor)
	log.Printf("📝 Parsed %d files from refactoring response", len(files))

	return &Result{
		Success:     true,
		Files:       files,
		RawResponse: resp.Content,
		Profile:     profile,
		Timestamp:   time.Now(),
	}
}

// RefactorFile читает исходный файл, определяет язык по расширению и
// запускает рефакторинг. Нечитаемый файл или неподдерживаемое расширение —
// обычный неуспешный результат, не фатальная ошибка.
func (r *Refactorer) RefactorFile(ctx context.Context, path string) *Result {
	language, err := analysis.LanguageForFile(path)
	if err != nil {
		return failure(err)
	}

	code, err := os.ReadFile(path)
	if err != nil {
		return failure(fmt.Errorf("error reading file: %w", err))
	}

	return r.Refactor(ctx, string(code), language, filepath.Base(path))
}

// RefactorFileAndSave рефакторит файл и сохраняет результат за одну операцию
func (r *Refactorer) RefactorFileAndSave(ctx context.Context, path, projectName string) *Result {
	language, err := analysis.LanguageForFile(path)
	if err != nil {
		return failure(err)
	}

	code, err := os.ReadFile(path)
	if err != nil {
		return failure(fmt.Errorf("error reading file: %w", err))
	}

	return r.RefactorAndSave(ctx, string(code), language, filepath.Base(path), projectName)
}

// RefactorAndSave рефакторит код и сохраняет файлы за одну операцию
func (r *Refactorer) RefactorAndSave(ctx context.Context, code string, language analysis.Language, filename, projectName string) *Result {
	result := r.Refactor(ctx, code, language, filename)

	if result.Success {
		saved, err := r.store.Save(result.Files, projectName, "refactored")
		if err != nil {
			result.Success = false
			result.Error = err.Error()
		} else {
			result.SavedFiles = saved
		}
	}

	if r.recorder != nil {
		ev := history.Event{
			Timestamp: result.Timestamp,
			Mode:      string(response.ModeRefactor),
			Language:  string(language),
			Project:   projectName,
			FileCount: len(result.Files),
			Success:   result.Success,
			Error:     result.Error,
		}
		if err := r.recorder.AppendEvent(ev); err != nil {
			log.Printf("⚠️ Failed to record refactoring event: %v", err)
		}
	}

	return result
}
