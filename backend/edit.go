package backend

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/scms/core"
)

var editTmpl = tmpl(`<h1>Edit &raquo;{{ .Document.Title }}&laquo;</h1>

	<form method="post" action="document/{{ .Document.ID }}/edit">

		<div class="form-group">
			<label>Title</label>
			<input type="text" class="form-control" name="title" value="{{ .Document.Title }}" required>
		</div>

		<div class="form-group">
			<label>Body (Markdown)</label>
			<textarea class="form-control" name="body" rows="16">{{ .Document.Body }}</textarea>
		</div>

		<div class="form-row">
			<div class="form-group col-sm-4">
				<label>URL</label>
				<input type="text" class="form-control" name="url" value="{{ .Document.URL }}">
			</div>
			<div class="form-group col-sm-2">
				<label>Level</label>
				<input type="number" class="form-control" name="level" min="0" max="7" value="{{ .Document.Level }}">
			</div>
			<div class="form-group col-sm-6">
				<label>Folder</label>
				<select class="form-control" name="folder">
					<option value="">(no folder)</option>
					{{ range .Folders }}
						<option value="{{ .ID }}"{{ if eq .ID $.Document.FolderID }} selected{{ end }}>{{ .Name }}</option>
					{{ end }}
				</select>
			</div>
		</div>

		<button type="submit" class="btn btn-primary" name="save">Save</button>
		<a class="btn btn-secondary" href="document/{{ .Document.ID }}">Cancel</a>

	</form>`)

type editData struct {
	*context
	Document core.Document
	Folders  []core.Folder
}

type documentForm struct {
	Title  string `form:"title" validate:"required,max=255"`
	Body   string `form:"body"`
	URL    string `form:"url" validate:"max=255"`
	Level  int    `form:"level" validate:"min=0,max=7"`
	Folder string `form:"folder"`
}

func edit(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	doc, err := ctx.db.GetDocument(params.ByName("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if req.Method == http.MethodPost {

		var input documentForm
		if err := decodeForm(req, &input); err != nil {
			ctx.Danger(err)
			ctx.SeeOther("/document/%s/edit", doc.ID)
			return nil
		}

		doc.Title = input.Title
		doc.Body = input.Body
		doc.URL = input.URL
		doc.Level = input.Level
		doc.FolderID = input.Folder

		saved, err := ctx.db.UpdateDocument(doc)
		if err != nil {
			ctx.db.Log.WithError(err).WithField("document", doc.ID).Warn("rejected document")
			ctx.Danger(err)
			ctx.SeeOther("/document/%s/edit", doc.ID)
			return nil
		}

		ctx.db.Log.WithField("document", saved.ID).WithField("editor", ctx.User.ID).Info("saved document")
		ctx.Success("document %s has been saved", saved.Title)
		ctx.SeeOther("/document/%s", saved.ID)
		return nil
	}

	folders, err := ctx.db.GetAllFolders(1000, 0)
	if err != nil {
		return err
	}

	return editTmpl.Execute(w, &editData{
		context:  ctx,
		Document: doc,
		Folders:  folders,
	})
}
