package web

import (
	"html/template"

	"scriptgen/internal/generator"
)

// pageData — данные для шаблона главной страницы
type pageData struct {
	SessionID          string
	StepDefinitions    string
	UIFlowJSON         string
	CustomInstructions string
	DOMElements        int
	APIEntries         int
	MappingJSON        string
	LastResult         *generator.Result
	Flash              string
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>GenAI Playwright Test Generator</title>
    <style>
        body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 960px; padding: 0 1rem; color: #222; }
        h1 { font-size: 1.6rem; }
        h2 { font-size: 1.2rem; margin-top: 2rem; border-bottom: 1px solid #ddd; padding-bottom: 0.3rem; }
        textarea, input[type=text] { width: 100%; font-family: monospace; font-size: 0.9rem; box-sizing: border-box; }
        textarea { min-height: 120px; }
        button { margin-top: 0.5rem; padding: 0.4rem 1rem; cursor: pointer; }
        .flash { background: #e6f4ea; border: 1px solid #a5d6a7; padding: 0.6rem 1rem; border-radius: 4px; }
        .stats { color: #555; font-size: 0.9rem; }
        pre { background: #f6f8fa; padding: 0.8rem; overflow-x: auto; font-size: 0.85rem; }
        .error { color: #b00020; }
    </style>
</head>
<body>
    <h1>GenAI-powered Playwright Test Generator</h1>
    {{if .Flash}}<p class="flash">{{.Flash}}</p>{{end}}
    <p class="stats">Session {{.SessionID}} &middot; {{.DOMElements}} DOM elements &middot; {{.APIEntries}} API entries collected</p>

    <h2>Step Definitions, DOM Snapshots and HAR Upload</h2>
    <form method="POST" action="/artifacts" enctype="multipart/form-data">
        <label>Step Definitions</label>
        <textarea name="step_definitions" placeholder="When user logs in&#10;Then dashboard loads...">{{.StepDefinitions}}</textarea>
        <label>Recorded UI Flow JSON</label>
        <textarea name="ui_flow" placeholder="Paste DevTools or CDP JSON">{{.UIFlowJSON}}</textarea>
        <label>DOM Snapshots (HTML or JSON)</label>
        <input type="file" name="dom_snapshots" multiple>
        <label>HAR File</label>
        <input type="file" name="har_file">
        <label>Custom Instructions (optional)</label>
        <textarea name="custom_instructions">{{.CustomInstructions}}</textarea>
        <button type="submit">Save Artifacts</button>
    </form>

    <h2>UI &harr; API Mapping</h2>
    <form method="POST" action="/mapping">
        <label>API Keyword or Exact URL</label>
        <input type="text" name="api_keyword">
        <label>(Optional) DOM Text or Locator to Map</label>
        <input type="text" name="dom_keyword">
        <button type="submit">Match UI to API</button>
    </form>
    {{if .MappingJSON}}<pre>{{.MappingJSON}}</pre>{{end}}

    <h2>Generate Script</h2>
    <form method="POST" action="/generate">
        <label>Request (leave empty to generate from collected artifacts)</label>
        <textarea name="request"></textarea>
        <label>Language</label>
        <select name="language">
            <option value="typescript">TypeScript</option>
            <option value="python">Python</option>
        </select>
        <label>Project Name (optional)</label>
        <input type="text" name="project">
        <button type="submit">Generate</button>
    </form>

    <h2>Refactor Code</h2>
    <form method="POST" action="/refactor">
        <label>Code</label>
        <textarea name="code"></textarea>
        <label>Language</label>
        <select name="language">
            <option value="python">Python</option>
            <option value="typescript">TypeScript</option>
        </select>
        <label>Original Filename (optional)</label>
        <input type="text" name="filename">
        <label>Project Name (optional)</label>
        <input type="text" name="project">
        <button type="submit">Refactor</button>
    </form>

    {{with .LastResult}}
    <h2>Last Result</h2>
    {{if .Success}}
        <p>Generated {{len .Files}} files:</p>
        <ul>
        {{range .Files}}<li><code>{{.Filename}}</code> ({{.Kind}})</li>{{end}}
        </ul>
    {{else}}
        <p class="error">{{.Error}}</p>
    {{end}}
    {{end}}

    <form method="POST" action="/end">
        <button type="submit">End Session</button>
    </form>
</body>
</html>
`))
