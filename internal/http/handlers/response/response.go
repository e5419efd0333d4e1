package response

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Link is rendered as a button below a message.
type Link struct {
	Href  string
	Label string
}

type message struct {
	Text string
	Link *Link
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderMessage(rw, "internal error", http.StatusInternalServerError)
}

func RenderValidationError(rw http.ResponseWriter, err error) {
	RenderMessage(rw, err.Error(), http.StatusBadRequest)
}

// RenderText writes a bare text/plain body.
func RenderText(rw http.ResponseWriter, text string, status int) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.WriteHeader(status)
	rw.Write([]byte(text))
}

func RenderMessage(rw http.ResponseWriter, text string, status int) {
	Render(rw, "message.html", message{Text: text}, status)
}

func RenderMessageWithLink(rw http.ResponseWriter, text string, link Link, status int) {
	Render(rw, "message.html", message{Text: text, Link: &link}, status)
}

// Render executes the page template into a buffer first, so a failing
// template never leaves a half written body behind.
func Render(rw http.ResponseWriter, page string, data interface{}, status int) {
	var content bytes.Buffer
	if err := templates.ExecuteTemplate(&content, page, data); err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)
	rw.Write(content.Bytes())
}
