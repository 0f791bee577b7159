package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"scriptgen/internal/analysis"
	"scriptgen/internal/config"
	"scriptgen/internal/generator"
	"scriptgen/internal/history"
	"scriptgen/internal/llm"
)

func main() {
	var (
		mode        = flag.String("mode", "generate", "operation mode: generate or refactor")
		file        = flag.String("file", "", "source file to refactor, or file with the generation request")
		request     = flag.String("request", "", "inline generation request (generate mode)")
		languageArg = flag.String("language", "python", "target language: python or typescript")
		project     = flag.String("project", "", "project directory name (default: timestamped)")
	)
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	factory := llm.NewFactory(cfg)
	llmClient, err := factory.CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	var recorder history.Recorder
	if rec, err := history.NewFileRecorder(cfg.HistoryFilePath); err != nil {
		log.Printf("failed to init history recorder: %v", err)
	} else {
		recorder = rec
	}

	ctx := context.Background()

	switch strings.ToLower(*mode) {
	case "generate":
		runGenerate(ctx, cfg, llmClient, recorder, *file, *request, *languageArg, *project)
	case "refactor":
		runRefactor(ctx, cfg, llmClient, recorder, *file, *project)
	default:
		log.Fatalf("unknown mode: %s (expected generate or refactor)", *mode)
	}
}

func runGenerate(ctx context.Context, cfg *config.Config, llmClient llm.Client, recorder history.Recorder, file, request, languageArg, project string) {
	if request == "" {
		if file == "" {
			log.Fatalf("generate mode requires -request or -file with the request text")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("failed to read request file: %v", err)
		}
		request = string(data)
	}

	language := analysis.LanguageTypeScript
	if strings.EqualFold(languageArg, string(analysis.LanguagePython)) {
		language = analysis.LanguagePython
	}

	gen := generator.NewGenerator(llmClient, generator.NewStore(cfg.GeneratedDir))
	if recorder != nil {
		gen.SetRecorder(recorder)
	}

	result := gen.GenerateAndSave(ctx, request, language, project)
	printResult(result)
}

func runRefactor(ctx context.Context, cfg *config.Config, llmClient llm.Client, recorder history.Recorder, file, project string) {
	if file == "" {
		log.Fatalf("refactor mode requires -file with the source to refactor")
	}

	ref := generator.NewRefactorer(llmClient, generator.NewStore(cfg.RefactoredDir))
	if recorder != nil {
		ref.SetRecorder(recorder)
	}

	result := ref.RefactorFileAndSave(ctx, file, project)
	if result.Profile != nil {
		fmt.Printf("Original analysis: %d lines, %d functions, %d classes\n",
			result.Profile.LineCount, len(result.Profile.Functions), len(result.Profile.Classes))
		if len(result.Profile.ComplexityFlags) > 0 {
			fmt.Printf("Complexity indicators: %s\n", strings.Join(result.Profile.ComplexityFlags, ", "))
		}
	}
	printResult(result)
}

func printResult(result *generator.Result) {
	if !result.Success {
		fmt.Printf("❌ Failed: %s\n", result.Error)
		os.Exit(1)
	}

	fmt.Printf("✅ Completed successfully, %d files:\n", len(result.Files))
	for _, path := range result.SavedFiles {
		fmt.Printf("  - %s\n", path)
	}
}
