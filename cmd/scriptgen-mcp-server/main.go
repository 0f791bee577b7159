package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"scriptgen/internal/analysis"
	"scriptgen/internal/config"
	"scriptgen/internal/generator"
	"scriptgen/internal/llm"
)

// ScriptGenMCPServer предоставляет генерацию и рефакторинг как MCP инструменты
type ScriptGenMCPServer struct {
	generator  *generator.Generator
	refactorer *generator.Refactorer
}

func NewScriptGenMCPServer(cfg *config.Config) (*ScriptGenMCPServer, error) {
	factory := llm.NewFactory(cfg)
	llmClient, err := factory.CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	return &ScriptGenMCPServer{
		generator:  generator.NewGenerator(llmClient, generator.NewStore(cfg.GeneratedDir)),
		refactorer: generator.NewRefactorer(llmClient, generator.NewStore(cfg.RefactoredDir)),
	}, nil
}

func errorResult(format string, args ...interface{}) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("❌ "+format, args...)},
		},
	}
}

func stringArg(params *mcp.CallToolParamsFor[map[string]interface{}], name string) string {
	if v, ok := params.Arguments[name].(string); ok {
		return v
	}
	return ""
}

func languageArg(params *mcp.CallToolParamsFor[map[string]interface{}]) analysis.Language {
	if strings.EqualFold(stringArg(params, "language"), string(analysis.LanguagePython)) {
		return analysis.LanguagePython
	}
	return analysis.LanguageTypeScript
}

// GenerateScript генерирует скрипт по текстовому запросу
func (s *ScriptGenMCPServer) GenerateScript(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[map[string]interface{}]) (*mcp.CallToolResultFor[any], error) {
	request := stringArg(params, "request")
	if request == "" {
		return errorResult("request parameter is required"), nil
	}

	log.Printf("🚀 MCP Server: generating script, request length %d", len(request))

	result := s.generator.GenerateAndSave(ctx, request, languageArg(params), stringArg(params, "project"))
	return toolResult(result), nil
}

// RefactorCode рефакторит переданный код
func (s *ScriptGenMCPServer) RefactorCode(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[map[string]interface{}]) (*mcp.CallToolResultFor[any], error) {
	code := stringArg(params, "code")
	if code == "" {
		return errorResult("code parameter is required"), nil
	}

	log.Printf("🔧 MCP Server: refactoring %d characters of code", len(code))

	result := s.refactorer.RefactorAndSave(ctx, code, languageArg(params), stringArg(params, "filename"), stringArg(params, "project"))
	return toolResult(result), nil
}

// AnalyzeCode возвращает структурный профиль кода без обращения к LLM
func (s *ScriptGenMCPServer) AnalyzeCode(ctx context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[map[string]interface{}]) (*mcp.CallToolResultFor[any], error) {
	code := stringArg(params, "code")
	if code == "" {
		return errorResult("code parameter is required"), nil
	}

	profile := analysis.Analyze(code, languageArg(params))
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return errorResult("failed to encode profile: %v", err), nil
	}

	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil
}

func toolResult(result *generator.Result) *mcp.CallToolResultFor[any] {
	if !result.Success {
		return errorResult("%s", result.Error)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ Produced %d files:\n", len(result.Files)))
	for _, path := range result.SavedFiles {
		sb.WriteString(fmt.Sprintf("  - %s\n", path))
	}

	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: sb.String()},
		},
		Meta: map[string]interface{}{
			"file_count":  len(result.Files),
			"saved_files": result.SavedFiles,
			"success":     true,
		},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	log.Printf("🚀 Starting ScriptGen MCP Server")

	cfg := config.New()
	scriptGenServer, err := NewScriptGenMCPServer(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to init server: %v", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "scriptgen-mcp",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_script",
		Description: "Generates a script from a natural-language request and saves the resulting files",
	}, scriptGenServer.GenerateScript)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "refactor_code",
		Description: "Refactors the provided source code and saves the resulting files",
	}, scriptGenServer.RefactorCode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_code",
		Description: "Returns a structural profile of the provided source code (imports, functions, classes, complexity indicators)",
	}, scriptGenServer.AnalyzeCode)

	log.Printf("📋 Registered 3 MCP tools: generate_script, refactor_code, analyze_code")
	log.Printf("🔗 Starting MCP server on stdin/stdout...")

	transport := mcp.NewStdioTransport()
	if err := server.Run(context.Background(), transport); err != nil {
		log.Fatalf("❌ ScriptGen MCP Server failed: %v", err)
	}
}
