package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/scms/core"
)

var indexTmpl = tmpl(`<h1>Overview</h1>

	{{ range .Folders }}
		<section class="folder" data-folder="{{ .ID }}">
			<h2>
				{{ .Name }}
				<small>
					<a href="permissions/{{ .ID }}">Permissions</a>
					<a class="ml-2" href="folders/{{ .ID }}/edit">Edit</a>
				</small>
			</h2>
			<ul class="documents">
				{{ range .Documents }}
					<li><a href="document/{{ .ID }}">{{ .Title }}</a> <small class="text-muted">{{ $.FormatDateTime .Edited }}</small></li>
				{{ else }}
					<li class="empty text-muted">No documents</li>
				{{ end }}
			</ul>
		</section>
	{{ else }}
		<p>No folders yet. <a href="folders">Create one.</a></p>
	{{ end }}

	{{ with .Loose }}
		<section class="loose">
			<h2>Other Documents</h2>
			<ul class="documents">
				{{ range . }}
					<li><a href="document/{{ .ID }}">{{ .Title }}</a> <small class="text-muted">{{ $.FormatDateTime .Edited }}</small></li>
				{{ end }}
			</ul>
		</section>
	{{ end }}`)

type indexData struct {
	*context
	Folders []core.FolderDocuments
	Loose   []core.Document // documents without folder
}

func index(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	folders, err := ctx.db.GetAllFolders(1000, 0)
	if err != nil {
		return err
	}

	documents, err := ctx.db.GetAllDocuments(1000, 0)
	if err != nil {
		return err
	}

	grouped, loose := core.GroupByFolder(folders, documents)

	return indexTmpl.Execute(w, &indexData{
		context: ctx,
		Folders: grouped,
		Loose:   loose,
	})
}
