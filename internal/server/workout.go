package server

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Flyrell/physiotrack/internal/protocol"
	"github.com/Flyrell/physiotrack/internal/store"
)

// Descriptions are therapist-authored markdown. Raw HTML is not rendered.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.Linkify,
		extension.Strikethrough,
		extension.Table,
	),
)

var workoutTmpl = template.Must(template.New("workout").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Hora do Treino - PhysioTrack</title>
</head>
<body>
{{- if .Protocol }}
<h1>Hora do Treino</h1>
<p class="protocol-title">{{ .Protocol.Title }}</p>
{{- if .Description }}
<section class="description">{{ .Description }}</section>
{{- end }}
<ol class="exercises">
{{- range .Exercises }}
<li>
<h2>{{ .Name }}</h2>
{{- if .Rest }}<span class="rest">Descanso: {{ .Rest }}</span>{{ end }}
<p class="prescription">{{ .Sets }} séries x {{ .Reps }} repetições{{ if .Duration }} · {{ .Duration }}s{{ end }}</p>
{{- if .Frequency }}<p class="frequency">Frequência: {{ .Frequency }}</p>{{ end }}
{{- if .Description }}<div class="exercise-description">{{ .Description }}</div>{{ end }}
{{- if .VideoURL }}<a class="video" href="{{ .VideoURL }}">Ver vídeo</a>{{ end }}
</li>
{{- end }}
</ol>
<a href="/dashboard/feedback">Registrar como estou hoje</a>
{{- else }}
<p>Você não tem um treino ativo no momento.</p>
<a href="/dashboard">Voltar</a>
{{- end }}
</body>
</html>
`))

type workoutPage struct {
	Protocol    *protocol.Protocol
	Description template.HTML
	Exercises   []workoutExercise
}

type workoutExercise struct {
	protocol.Exercise
	Description template.HTML
}

func renderMarkdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	// goldmark omits raw HTML unless html.WithUnsafe is set.
	return template.HTML(buf.String()), nil
}

// Workout renders the calling athlete's active protocol as an HTML sheet.
func (h *Handler) Workout(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page := workoutPage{}
	status := http.StatusOK

	p, err := h.clinic.ActiveProtocol(r.Context(), userID)
	switch {
	case errors.Is(err, store.ErrNoActiveProtocol):
		status = http.StatusNotFound
	case err != nil:
		writeError(w, r, err)
		return
	default:
		page.Protocol = &p
		if page.Description, err = renderMarkdown(p.Description); err != nil {
			writeError(w, r, err)
			return
		}
		for _, ex := range p.Exercises {
			desc, err := renderMarkdown(ex.Description)
			if err != nil {
				writeError(w, r, err)
				return
			}
			page.Exercises = append(page.Exercises, workoutExercise{Exercise: ex, Description: desc})
		}
	}

	var buf bytes.Buffer
	if err := workoutTmpl.Execute(&buf, page); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.FromContext(r.Context()).Error("failed to write workout page", "err", err)
	}
}
