package artifacts

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIEntry — JSON-ответ API, извлеченный из HAR-захвата
type APIEntry struct {
	URL  string          `json:"url"`
	Body json.RawMessage `json:"json"`
}

type harFile struct {
	Log struct {
		Entries []harEntry `json:"entries"`
	} `json:"log"`
}

type harEntry struct {
	Request struct {
		URL string `json:"url"`
	} `json:"request"`
	Response struct {
		Content struct {
			MimeType string `json:"mimeType"`
			Text     string `json:"text"`
		} `json:"content"`
	} `json:"response"`
}

// ParseHAR извлекает из HAR-захвата JSON-тела ответов. Некорректные записи
// пропускаются, некорректный HAR целиком — ошибка входных данных.
func ParseHAR(raw string) ([]APIEntry, error) {
	var har harFile
	if err := json.Unmarshal([]byte(raw), &har); err != nil {
		return nil, fmt.Errorf("HAR parsing failed: %w", err)
	}

	var entries []APIEntry
	for _, entry := range har.Log.Entries {
		if !strings.HasPrefix(entry.Response.Content.MimeType, "application/json") {
			continue
		}
		text := entry.Response.Content.Text
		if text == "" || !json.Valid([]byte(text)) {
			continue
		}
		entries = append(entries, APIEntry{
			URL:  entry.Request.URL,
			Body: json.RawMessage(text),
		})
	}

	return entries, nil
}

// MatchAPI возвращает первую запись, URL которой содержит ключевое слово
func MatchAPI(entries []APIEntry, keyword string) *APIEntry {
	if keyword == "" {
		return nil
	}
	for i := range entries {
		if strings.Contains(entries[i].URL, keyword) {
			return &entries[i]
		}
	}
	return nil
}

// UIAPIMapping связывает элемент UI с данными API, которые он отображает
type UIAPIMapping struct {
	APIURL        string          `json:"api_url"`
	APIDataSample json.RawMessage `json:"api_data_sample"`
	UIElementHTML string          `json:"ui_element_html"`
}

// BuildMapping строит связку UI↔API по результатам поиска. Отсутствие
// совпадений не считается ошибкой: поля заполняются заглушками, как и
// в исходной форме.
func BuildMapping(api *APIEntry, dom *Element, apiKeyword string) UIAPIMapping {
	mapping := UIAPIMapping{
		APIURL:        apiKeyword,
		APIDataSample: json.RawMessage("{}"),
		UIElementHTML: "(No UI element matched)",
	}
	if api != nil {
		mapping.APIURL = api.URL
		mapping.APIDataSample = api.Body
	}
	if dom != nil {
		mapping.UIElementHTML = dom.HTML
	}
	return mapping
}
