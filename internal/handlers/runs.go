package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"hf-council/internal/contextutil"
	"hf-council/internal/service"
)

const defaultRunsLimit = 20

// RunsHandler serves stored runs as JSON and as rendered HTML pages.
type RunsHandler struct {
	councilService service.CouncilService
	markdown       goldmark.Markdown
	template       *template.Template
}

// RunSummary is a stored run without its verdicts.
//
// swagger:model RunSummary
type RunSummary struct {
	RunID     string `json:"run_id"`
	Kind      string `json:"kind"`
	Prompt    string `json:"prompt"`
	CreatedAt string `json:"created_at"`
}

// RunsResponse lists recent runs, newest first.
//
// swagger:model RunsResponse
type RunsResponse struct {
	Runs []RunSummary `json:"runs"`
}

// runPageData holds template data for a rendered run page.
type runPageData struct {
	Title     string
	Kind      string
	CreatedAt string
	Verdicts  []runPageVerdict
}

type runPageVerdict struct {
	Model   string
	Failure string
	Content template.HTML
}

// NewRunsHandler creates a new RunsHandler.
func NewRunsHandler(councilService service.CouncilService) *RunsHandler {
	tmpl := template.Must(template.New("run").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
      background: #050b18;
      color: #e4ecff;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid rgba(148, 163, 184, 0.2);
      padding-bottom: 1.5rem;
    }
    h1 {
      margin-top: 0;
      color: #fff;
      font-size: 1.6rem;
    }
    article {
      background: rgba(12, 19, 35, 0.85);
      border: 1px solid rgba(99, 102, 241, 0.2);
      border-radius: 16px;
      padding: 1.5rem 2rem;
      margin-bottom: 1.5rem;
    }
    article h2 {
      color: #c7d2fe;
      margin-top: 0;
      font-size: 1.1rem;
    }
    pre {
      background: #0f172a;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 10px;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
    }
    .meta {
      color: #94a3b8;
      font-size: 0.95rem;
    }
    .error {
      color: #f7768e;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.Kind}} &middot; {{.CreatedAt}}</p>
  </header>
  {{range .Verdicts}}
  <article>
    <h2>{{.Model}}</h2>
    {{if .Failure}}<pre class="error">{{.Failure}}</pre>{{else}}{{.Content}}{{end}}
  </article>
  {{end}}
</body>
</html>`))

	return &RunsHandler{
		councilService: councilService,
		markdown: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// List returns recent runs.
//
// swagger:route GET /api/runs runs listRuns
//
// # List recent runs
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Recent runs, newest first
//	  schema:
//	    "$ref": "#/definitions/RunsResponse"
//	'503':
//	  description: History is disabled
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			logger.WarnContext(ctx, "invalid limit", "limit", raw)
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	sessions, err := h.councilService.History(ctx, limit)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list runs")
		return
	}

	resp := RunsResponse{Runs: make([]RunSummary, 0, len(sessions))}
	for _, s := range sessions {
		resp.Runs = append(resp.Runs, RunSummary{
			RunID:     s.RunID,
			Kind:      s.Kind,
			Prompt:    s.Prompt,
			CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

// Get returns one stored run with its verdicts.
//
// swagger:route GET /api/runs/{id} runs getRun
//
// # Get a stored run
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: The run
//	  schema:
//	    "$ref": "#/definitions/SessionResponse"
//	'404':
//	  description: No run with that id
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	session, err := h.councilService.Run(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load run")
		return
	}
	writeJSON(w, ctx, http.StatusOK, toSessionResponse(session))
}

// Page renders one stored run as HTML, converting each answer from markdown.
// Raw HTML inside answers is not passed through.
func (h *RunsHandler) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	session, err := h.councilService.Run(ctx, chi.URLParam(r, "id"))
	if err != nil {
		logger.WarnContext(ctx, "run page unavailable", "error", err)
		status := http.StatusInternalServerError
		switch {
		case isNotFound(err):
			status = http.StatusNotFound
		case isHistoryDisabled(err):
			status = http.StatusServiceUnavailable
		}
		http.Error(w, strings.ToLower(http.StatusText(status)), status)
		return
	}

	data := runPageData{
		Title:     session.Prompt,
		Kind:      session.Kind,
		CreatedAt: session.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"),
		Verdicts:  make([]runPageVerdict, 0, len(session.Verdicts)),
	}
	for _, v := range session.Verdicts {
		pv := runPageVerdict{Model: v.Model, Failure: v.Failure}
		if !v.Failed() {
			html, err := h.renderMarkdown(v.Answer)
			if err != nil {
				logger.ErrorContext(ctx, "failed to render answer", "model", v.Model, "error", err)
				http.Error(w, "failed to render run", http.StatusInternalServerError)
				return
			}
			pv.Content = template.HTML(html)
		}
		data.Verdicts = append(data.Verdicts, pv)
	}

	var buf bytes.Buffer
	if err := h.template.Execute(&buf, data); err != nil {
		logger.ErrorContext(ctx, "failed to execute run template", "run_id", session.RunID, "error", err)
		http.Error(w, "failed to render run", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *RunsHandler) renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
