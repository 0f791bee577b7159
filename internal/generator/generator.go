package generator

import (
	"context"
	"log"
	"time"

	"scriptgen/internal/analysis"
	"scriptgen/internal/history"
	"scriptgen/internal/llm"
	"scriptgen/internal/prompt"
	"scriptgen/internal/response"
)

// Result — итог одного прогона конвейера. Ошибки не пересекают публичную
// границу как panic или error: любой сбой превращается в Result с Success=false.
type Result struct {
	Success     bool                    `json:"success"`
	Error       string                  `json:"error,omitempty"`
	Files       []response.FileRecord   `json:"files,omitempty"`
	RawResponse string                  `json:"raw_response,omitempty"`
	Profile     *analysis.SourceProfile `json:"original_analysis,omitempty"`
	SavedFiles  []string                `json:"saved_files,omitempty"`
	Timestamp   time.Time               `json:"timestamp"`
}

func failure(err error) *Result {
	return &Result{
		Success:   false,
		Error:     err.Error(),
		Timestamp: time.Now(),
	}
}

// Generator генерирует скрипты по текстовому запросу пользователя
type Generator struct {
	llmClient llm.Client
	store     *Store
	recorder  history.Recorder
}

func NewGenerator(llmClient llm.Client, store *Store) *Generator {
	return &Generator{
		llmClient: llmClient,
		store:     store,
	}
}

// SetRecorder подключает журнал прогонов
func (g *Generator) SetRecorder(r history.Recorder) {
	g.recorder = r
}

// Generate отправляет запрос в LLM и разбирает ответ на файлы
func (g *Generator) Generate(ctx context.Context, request string, language analysis.Language) *Result {
	log.Printf("🚀 Generating %s script, request length %d", language, len(request))

	messages := []llm.Message{
		{Role: "system", Content: prompt.GenerationSystemPrompt(language)},
		{Role: "user", Content: prompt.GenerationUserPrompt(request)},
	}

	resp, err := g.llmClient.Generate(ctx, messages)
	if err != nil {
		return failure(err)
	}

	files := response.Parse(resp.Content, language, response.ModeGenerate)
	log.Printf("📝 Parsed %d files from response (%d characters)", len(files), len(resp.Content))

	return &Result{
		Success:     true,
		Files:       files,
		RawResponse: resp.Content,
		Timestamp:   time.Now(),
	}
}

// GenerateAndSave генерирует скрипт и сохраняет файлы за одну операцию
func (g *Generator) GenerateAndSave(ctx context.Context, request string, language analysis.Language, projectName string) *Result {
	result := g.Generate(ctx, request, language)

	if result.Success {
		saved, err := g.store.Save(result.Files, projectName, "project")
		if err != nil {
			result.Success = false
			result.Error = err.Error()
		} else {
			result.SavedFiles = saved
		}
	}

	g.record(result, language, projectName)
	return result
}

func (g *Generator) record(result *Result, language analysis.Language, project string) {
	if g.recorder == nil {
		return
	}
	ev := history.Event{
		Timestamp: result.Timestamp,
		Mode:      string(response.ModeGenerate),
		Language:  string(language),
		Project:   project,
		FileCount: len(result.Files),
		Success:   result.Success,
		Error:     result.Error,
	}
	if err := g.recorder.AppendEvent(ev); err != nil {
		log.Printf("⚠️ Failed to record generation event: %v", err)
	}
}
