package backend

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"gitlab.com/golang-commonmark/markdown"
)

// raw HTML in documents is not rendered
var markdownParser = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

var documentTmpl = tmpl(`<h1>{{ .Title }}</h1>

	<p class="text-muted">
		Created {{ .FormatDateTime .Created }}
		{{ if ne .Created .Edited }}, edited {{ .FormatDateTime .Edited }}{{ end }}
	</p>

	<div class="document-body">
		{{ .HTML }}
	</div>

	<a class="btn btn-secondary edit" href="document/{{ .ID }}/edit">Edit</a>`)

type documentData struct {
	*context
	ID      string
	Title   string
	Created int64
	Edited  int64
	HTML    template.HTML
}

func renderMarkdown(body string) template.HTML {
	return template.HTML(markdownParser.RenderToString([]byte(body)))
}

func document(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	doc, err := ctx.db.GetDocument(params.ByName("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	return documentTmpl.Execute(w, &documentData{
		context: ctx,
		ID:      doc.ID,
		Title:   doc.Title,
		Created: doc.Created,
		Edited:  doc.Edited,
		HTML:    renderMarkdown(doc.Body),
	})
}
