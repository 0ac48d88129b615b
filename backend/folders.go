package backend

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/scms/core"
)

var foldersTmpl = tmpl(`<h1>Folders</h1>

	<table class="table table-sm">
		<tr>
			<th>Name</th>
			<th>Level</th>
			<th></th>
		</tr>
		{{ range .Folders }}
			<tr>
				<td>{{ .Name }}</td>
				<td>{{ .Level }}</td>
				<td>
					<a href="permissions/{{ .ID }}">Permissions</a>
					<a class="ml-2" href="folders/{{ .ID }}/edit">Edit</a>
				</td>
			</tr>
		{{ end }}
	</table>

	<h2>Create Folder</h2>

	<form method="post" class="form-inline">
		<input type="text" class="form-control" name="name" placeholder="Name" required>
		<input type="number" class="form-control mx-sm-3" name="level" min="0" max="7" value="0">
		<button type="submit" class="btn btn-primary" name="create">Create folder</button>
	</form>`)

type foldersData struct {
	*context
	Folders []core.Folder
}

type folderForm struct {
	Name  string `form:"name" validate:"required,max=128"`
	Level int    `form:"level" validate:"min=0,max=7"`
}

func folders(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		var input folderForm
		if err := decodeForm(req, &input); err != nil {
			ctx.Danger(err)
			ctx.SeeOther("/folders")
			return nil
		}

		folder, err := ctx.db.InsertFolder(input.Name, input.Level)
		if err != nil {
			return err
		}

		ctx.db.Log.WithField("folder", folder.ID).WithField("name", folder.Name).Info("created folder")
		ctx.Success("folder %s has been created", folder.Name)
		ctx.SeeOther("/folders")
		return nil
	}

	all, err := ctx.db.GetAllFolders(1000, 0)
	if err != nil {
		return err
	}

	return foldersTmpl.Execute(w, &foldersData{
		context: ctx,
		Folders: all,
	})
}

var folderEditTmpl = tmpl(`<h1>Edit Folder &raquo;{{ .Folder.Name }}&laquo;</h1>

	<form method="post" action="folders/{{ .Folder.ID }}/edit" class="form-inline">
		<input type="text" class="form-control" name="name" value="{{ .Folder.Name }}" required>
		<input type="number" class="form-control mx-sm-3" name="level" min="0" max="7" value="{{ .Folder.Level }}">
		<button type="submit" class="btn btn-primary" name="save">Save</button>
	</form>`)

type folderEditData struct {
	*context
	Folder core.Folder
}

func folderEdit(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	folder, err := ctx.db.GetFolder(params.ByName("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if req.Method == http.MethodPost {

		var input folderForm
		if err := decodeForm(req, &input); err != nil {
			ctx.Danger(err)
			ctx.SeeOther("/folders/%s/edit", folder.ID)
			return nil
		}

		folder.Name = input.Name
		folder.Level = input.Level
		if err := ctx.db.UpdateFolder(folder); err != nil {
			return err
		}

		ctx.db.Log.WithField("folder", folder.ID).WithField("name", folder.Name).Info("saved folder")
		ctx.Success("folder %s has been saved", folder.Name)
		ctx.SeeOther("/folders")
		return nil
	}

	return folderEditTmpl.Execute(w, &folderEditData{
		context: ctx,
		Folder:  folder,
	})
}
