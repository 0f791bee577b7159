package web

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scriptgen/internal/analysis"
	"scriptgen/internal/artifacts"
	"scriptgen/internal/session"
)

// handleRoot отдает страницу формы сбора артефактов
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	sess := s.currentSession(w, r)

	var data pageData
	sess.View(func(st *session.Session) {
		data = pageData{
			SessionID:          st.ID,
			StepDefinitions:    st.StepDefinitions,
			UIFlowJSON:         st.UIFlowJSON,
			CustomInstructions: st.CustomInstructions,
			DOMElements:        len(st.UIData),
			APIEntries:         len(st.APIData),
			MappingJSON:        st.MappingJSON,
			LastResult:         st.LastResult,
			Flash:              r.URL.Query().Get("msg"),
		}
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("❌ Failed to render page: %v", err)
	}
}

// handleArtifacts принимает артефакты формы, разбирает DOM и HAR и
// сохраняет все входные и разобранные данные на диск
func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess := s.currentSession(w, r)
	timestamp := time.Now().Format("20060102_150405")

	stepDefs := r.FormValue("step_definitions")
	uiFlow := r.FormValue("ui_flow")
	instructions := r.FormValue("custom_instructions")

	var domContents []string
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["dom_snapshots"] {
			content, err := readUpload(fh.Open())
			if err != nil {
				http.Error(w, "Failed to read DOM snapshot: "+err.Error(), http.StatusBadRequest)
				return
			}
			domContents = append(domContents, content)
		}
	}

	harRaw := ""
	if f, _, err := r.FormFile("har_file"); err == nil {
		content, err := readUpload(f, nil)
		if err != nil {
			http.Error(w, "Failed to read HAR file: "+err.Error(), http.StatusBadRequest)
			return
		}
		harRaw = content
	}

	// Разбираем снимки DOM
	var uiData []artifacts.Element
	for _, dom := range domContents {
		elements, err := artifacts.ParseDOM(dom)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		uiData = append(uiData, elements...)
	}

	// Разбираем HAR
	var apiData []artifacts.APIEntry
	if harRaw != "" {
		entries, err := artifacts.ParseHAR(harRaw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		apiData = entries
	}

	sess.Update(func(st *session.Session) {
		st.StepDefinitions = stepDefs
		st.UIFlowJSON = uiFlow
		st.CustomInstructions = instructions
		st.DOMSnapshots = domContents
		st.HARRaw = harRaw
		st.UIData = uiData
		st.APIData = apiData
	})

	if err := s.saveArtifacts(sess, timestamp); err != nil {
		log.Printf("❌ Failed to save artifacts: %v", err)
		http.Error(w, "Failed to save artifacts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("📥 Collected artifacts: %d DOM elements, %d API entries", len(uiData), len(apiData))
	redirectWithMessage(w, r, "Artifacts saved, including parsed DOM and HAR")
}

// handleMapping связывает элемент UI с записью API по ключевым словам
func (s *Server) handleMapping(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.currentSession(w, r)
	apiKeyword := r.FormValue("api_keyword")
	domKeyword := r.FormValue("dom_keyword")

	var mappingJSON string
	sess.Update(func(st *session.Session) {
		st.Mappings = append(st.Mappings, session.MappingInput{
			APIKeyword: apiKeyword,
			DOMKeyword: domKeyword,
		})

		mapping := artifacts.BuildMapping(
			artifacts.MatchAPI(st.APIData, apiKeyword),
			artifacts.MatchDOM(st.UIData, domKeyword),
			apiKeyword,
		)
		data, err := json.MarshalIndent(mapping, "", "  ")
		if err != nil {
			data = []byte("{}")
		}
		st.MappingJSON = string(data)
		mappingJSON = st.MappingJSON
	})

	log.Printf("🔗 Built UI↔API mapping (%d bytes)", len(mappingJSON))
	redirectWithMessage(w, r, "Mapping updated")
}

// handleGenerate запускает генерацию скрипта из собранных артефактов
// или из произвольного запроса
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.currentSession(w, r)
	language := parseLanguage(r.FormValue("language"))
	request := r.FormValue("request")
	project := r.FormValue("project")

	if strings.TrimSpace(request) == "" {
		request = s.buildArtifactRequest(sess)
	}
	if strings.TrimSpace(request) == "" {
		http.Error(w, "Nothing to generate: provide a request or collect artifacts first", http.StatusBadRequest)
		return
	}

	result := s.generator.GenerateAndSave(r.Context(), request, language, project)
	sess.Update(func(st *session.Session) { st.LastResult = result })

	if !result.Success {
		redirectWithMessage(w, r, "Generation failed: "+result.Error)
		return
	}
	redirectWithMessage(w, r, fmt.Sprintf("Generated %d files", len(result.Files)))
}

// handleRefactor запускает рефакторинг кода, вставленного в форму
func (s *Server) handleRefactor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess := s.currentSession(w, r)
	code := r.FormValue("code")
	language := parseLanguage(r.FormValue("language"))
	filename := r.FormValue("filename")
	project := r.FormValue("project")

	if strings.TrimSpace(code) == "" {
		http.Error(w, "No code provided", http.StatusBadRequest)
		return
	}

	result := s.refactorer.RefactorAndSave(r.Context(), code, language, filename, project)
	sess.Update(func(st *session.Session) { st.LastResult = result })

	if !result.Success {
		redirectWithMessage(w, r, "Refactoring failed: "+result.Error)
		return
	}
	redirectWithMessage(w, r, fmt.Sprintf("Refactored into %d files", len(result.Files)))
}

// handleEndSession завершает сессию пользователя
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if err := s.sessions.EndSession(cookie.Value); err != nil {
			log.Printf("⚠️ %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleStatus отдает состояние сервера
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":          "ok",
		"uptime":          time.Since(s.startTime).String(),
		"active_sessions": s.sessions.GetActiveSessions(),
	})
}

// buildArtifactRequest собирает запрос на генерацию Playwright-теста из
// накопленных артефактов сессии
func (s *Server) buildArtifactRequest(sess *session.Session) string {
	var sb strings.Builder
	sess.View(func(st *session.Session) {
		if st.StepDefinitions == "" && len(st.UIData) == 0 && len(st.APIData) == 0 {
			return
		}

		sb.WriteString("Create a Playwright test based on the following artifacts.\n\n")
		if st.StepDefinitions != "" {
			sb.WriteString("STEP DEFINITIONS:\n" + st.StepDefinitions + "\n\n")
		}
		if st.UIFlowJSON != "" {
			sb.WriteString("RECORDED UI FLOW:\n" + st.UIFlowJSON + "\n\n")
		}
		if st.MappingJSON != "" {
			sb.WriteString("UI TO API MAPPING:\n" + st.MappingJSON + "\n\n")
		}
		if len(st.UIData) > 0 {
			sb.WriteString(fmt.Sprintf("UI ELEMENTS (%d extracted from DOM snapshots):\n", len(st.UIData)))
			for i, el := range st.UIData {
				if i >= 20 {
					sb.WriteString("... and more elements\n")
					break
				}
				sb.WriteString("- " + el.Text + "\n")
			}
			sb.WriteString("\n")
		}
		if len(st.APIData) > 0 {
			sb.WriteString(fmt.Sprintf("API RESPONSES (%d captured from HAR):\n", len(st.APIData)))
			for i, entry := range st.APIData {
				if i >= 10 {
					sb.WriteString("... and more responses\n")
					break
				}
				sb.WriteString("- " + entry.URL + "\n")
			}
			sb.WriteString("\n")
		}
		if st.CustomInstructions != "" {
			sb.WriteString("CUSTOM INSTRUCTIONS:\n" + st.CustomInstructions + "\n")
		}
	})
	return sb.String()
}

// saveArtifacts сохраняет входные и разобранные артефакты с меткой времени
func (s *Server) saveArtifacts(sess *session.Session, timestamp string) error {
	if err := os.MkdirAll(s.artifactsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifacts dir: %w", err)
	}

	var saveErr error
	write := func(name, content string) {
		if saveErr != nil || content == "" {
			return
		}
		path := filepath.Join(s.artifactsDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			saveErr = fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	sess.View(func(st *session.Session) {
		write(fmt.Sprintf("step_definitions_%s.txt", timestamp), st.StepDefinitions)
		write(fmt.Sprintf("ui_flow_%s.json", timestamp), st.UIFlowJSON)
		write(fmt.Sprintf("instructions_%s.txt", timestamp), st.CustomInstructions)
		for i, dom := range st.DOMSnapshots {
			write(fmt.Sprintf("dom_snapshot_%d_%s.html", i+1, timestamp), dom)
		}
		write(fmt.Sprintf("har_%s.har", timestamp), st.HARRaw)

		if data, err := json.MarshalIndent(st.UIData, "", "  "); err == nil {
			write(fmt.Sprintf("parsed_dom_%s.json", timestamp), string(data))
		}
		if data, err := json.MarshalIndent(st.APIData, "", "  "); err == nil {
			write(fmt.Sprintf("parsed_har_%s.json", timestamp), string(data))
		}
	})

	return saveErr
}

func parseLanguage(value string) analysis.Language {
	if value == string(analysis.LanguagePython) {
		return analysis.LanguagePython
	}
	return analysis.LanguageTypeScript
}

func readUpload(f io.ReadCloser, err error) (string, error) {
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}
