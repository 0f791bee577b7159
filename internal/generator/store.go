package generator

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scriptgen/internal/response"
)

// Store сохраняет извлеченные файлы в директорию проекта
type Store struct {
	outputDir string
}

func NewStore(outputDir string) *Store {
	return &Store{outputDir: outputDir}
}

// Save записывает файлы в <outputDir>/<projectName>. Если имя проекта не
// задано, оно формируется как <prefix>_<yyyyMMdd_HHmmss>. Повторяющиеся
// имена файлов перезаписывают друг друга — это допустимое поведение.
func (s *Store) Save(files []response.FileRecord, projectName, prefix string) ([]string, error) {
	if projectName == "" {
		projectName = fmt.Sprintf("%s_%s", prefix, time.Now().Format("20060102_150405"))
	}

	projectDir := filepath.Join(s.outputDir, projectName)
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create project dir: %w", err)
	}

	var saved []string
	for _, file := range files {
		if err := validateFilename(file.Filename); err != nil {
			return saved, err
		}

		path := filepath.Join(projectDir, file.Filename)
		if dir := filepath.Dir(path); dir != projectDir {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return saved, fmt.Errorf("failed to create dir for %s: %w", file.Filename, err)
			}
		}
		if err := os.WriteFile(path, []byte(file.Content), 0o644); err != nil {
			return saved, fmt.Errorf("failed to write %s: %w", file.Filename, err)
		}

		saved = append(saved, path)
		log.Printf("💾 Saved: %s", path)
	}

	return saved, nil
}

// validateFilename отклоняет имена, выходящие за пределы директории проекта.
// Формат ответа LLM не контролируется, поэтому имена из него не заслуживают
// доверия.
func validateFilename(name string) error {
	if name == "" {
		return fmt.Errorf("empty filename in response")
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("absolute filename not allowed: %s", name)
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			return fmt.Errorf("filename escapes project directory: %s", name)
		}
	}
	return nil
}
