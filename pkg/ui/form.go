package ui

import (
	"context"
	"errors"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/agentchat/pkg/chat"
	"github.com/artem13815/agentchat/pkg/logger"
)

const Title = "Multi AI Agent Chat using GROQ and Tavily"

// Asker is the backend call the form depends on.
type Asker interface {
	Ask(ctx context.Context, req chat.Request) (string, error)
}

type FormHandler struct {
	backend Asker
	models  []string
	log     logger.Logger
}

func NewFormHandler(backend Asker, models []string, log logger.Logger) *FormHandler {
	return &FormHandler{backend: backend, models: models, log: log}
}

type formView struct {
	Title        string
	Models       []string
	Selected     string
	SystemPrompt string
	AllowSearch  bool
	Query        string

	Success bool
	Answer  template.HTML
	Error   string
}

// Show renders an empty form with the first model selected.
func (h *FormHandler) Show(c *fiber.Ctx) error {
	view := formView{Title: Title, Models: h.models}
	if len(h.models) > 0 {
		view.Selected = h.models[0]
	}
	return render(c, view)
}

// Submit posts the query to the backend and renders the answer or an error.
// Whatever happens, the user gets the form back with a message.
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	view := formView{
		Title:        Title,
		Models:       h.models,
		Selected:     c.FormValue("model"),
		SystemPrompt: c.FormValue("system_prompt"),
		AllowSearch:  c.FormValue("allow_search") != "",
		Query:        c.FormValue("query"),
	}
	if strings.TrimSpace(view.Query) == "" {
		return render(c, view)
	}

	req := chat.Request{
		ModelName:    view.Selected,
		SystemPrompt: view.SystemPrompt,
		Messages:     []string{view.Query},
		AllowSearch:  view.AllowSearch,
	}
	h.log.Info("requesting response", "model", req.ModelName, "allow_search", req.AllowSearch)

	answer, err := h.backend.Ask(c.UserContext(), req)
	var statusErr *StatusError
	switch {
	case err == nil:
		h.log.Info("received response from agent", "model", req.ModelName, "response_chars", len(answer))
		view.Success = true
		view.Answer = ToHTML(answer)
	case errors.As(err, &statusErr):
		h.log.Error("backend error", "model", req.ModelName, "status", statusErr.Code)
		view.Error = "Backend error"
	default:
		h.log.Error("backend call failed", "model", req.ModelName, "error", err)
		view.Error = chat.FailureMessage + ": " + err.Error()
	}
	return render(c, view)
}

// ToHTML escapes s and turns newlines into <br> tags.
func ToHTML(s string) template.HTML {
	return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
}

func render(c *fiber.Ctx, view formView) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return page.Execute(c, view)
}

var page = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; }
label { display: block; margin-top: 1rem; font-weight: bold; }
textarea, select { width: 100%; }
.success { color: #1b5e20; }
.error { color: #b71c1c; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<form method="post" action="/">
  <label for="model">Select AI Model:</label>
  <select id="model" name="model">
  {{- range .Models}}
    <option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>
  {{- end}}
  </select>
  <label for="system_prompt">Define your AI Agent:</label>
  <textarea id="system_prompt" name="system_prompt" rows="3">{{.SystemPrompt}}</textarea>
  <label><input type="checkbox" name="allow_search" value="on"{{if .AllowSearch}} checked{{end}}> Allow Web Search</label>
  <label for="query">Enter your query:</label>
  <textarea id="query" name="query" rows="6">{{.Query}}</textarea>
  <p><button type="submit">Ask Agent</button></p>
</form>
{{- if .Success}}
<p class="success">Response generated successfully!</p>
<h2>AI Agent Response:</h2>
<div id="answer">{{.Answer}}</div>
{{- end}}
{{- if .Error}}
<p class="error" id="error">{{.Error}}</p>
{{- end}}
</body>
</html>
`))
