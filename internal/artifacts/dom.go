package artifacts

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Element — извлеченный из DOM-снимка элемент с видимым текстом
type Element struct {
	Text string `json:"text"`
	HTML string `json:"html"`
}

var interestingTags = map[string]bool{
	"h1": true, "h2": true, "p": true, "button": true,
	"input": true, "span": true, "div": true,
}

// ParseDOM извлекает из HTML-снимка элементы с непустым текстом.
// Интересуют только теги, по которым обычно строятся локаторы тестов.
func ParseDOM(htmlText string) ([]Element, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("failed to parse DOM snapshot: %w", err)
	}

	var elements []Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && interestingTags[n.Data] {
			if text := nodeText(n); text != "" {
				var sb strings.Builder
				if err := html.Render(&sb, n); err == nil {
					elements = append(elements, Element{Text: text, HTML: sb.String()})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return elements, nil
}

// nodeText собирает текстовые узлы элемента без лишних пробелов
func nodeText(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// MatchDOM возвращает первый элемент, текст которого содержит ключевое слово
// (без учета регистра)
func MatchDOM(elements []Element, keyword string) *Element {
	if keyword == "" {
		return nil
	}
	lower := strings.ToLower(keyword)
	for i := range elements {
		if strings.Contains(strings.ToLower(elements[i].Text), lower) {
			return &elements[i]
		}
	}
	return nil
}
