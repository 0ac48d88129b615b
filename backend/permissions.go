package backend

import (
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/scms/core"
	"github.com/wansing/scms/metrics"
)

var permissionsTmpl = tmpl(`<h1>Permissions &raquo;{{ .Folder.Name }}&laquo;</h1>

	<script type="application/json" id="scrUserPermissions">{{ .UsersPayload }}</script>

	<form method="post" action="permissions/{{ .Folder.ID }}">

		<input type="hidden" name="folderPermissions" value="{{ .Form.HiddenField }}">

		<div class="form-row picker">
			<div class="col-sm-6">
				<div class="input-group">
					<input type="search" class="form-control" name="query" value="{{ .Form.Picker.Query }}" placeholder="Search users">
					<div class="input-group-append">
						<button type="submit" class="btn btn-secondary" name="action" value="filter">Search</button>
					</div>
				</div>
				<select class="form-control mt-1" name="user" size="8">
					{{ with .NoResults }}
						<option value="" disabled>{{ . }}</option>
					{{ end }}
					{{ range .Form.Picker.Visible }}
						<option value="{{ .Value }}"{{ if eq .Value $.Selected }} selected{{ end }}>{{ .Label }}</option>
					{{ end }}
				</select>
				<button type="submit" class="btn btn-secondary mt-1" name="action" value="add">Add user</button>
			</div>
		</div>

		<table class="table table-sm" id="permissions">
			<tr>
				<th>User</th>
				{{ range Flags }}
					<th>{{ . }}</th>
				{{ end }}
				<th></th>
			</tr>
			{{ range .Form.Table.Rows }}
				{{ $row := . }}
				<tr data-key="{{ .Key }}" data-user="{{ .UserID }}">
					<td title="{{ .Title }}">{{ .Name }}</td>
					{{ range Flags }}
						<td><input type="checkbox" name="{{ CheckboxName $row.UserID . }}" value="true"{{ if $row.Get . }} checked{{ end }}></td>
					{{ end }}
					<td><button type="submit" class="btn btn-sm btn-outline-danger" name="delete" value="{{ .UserID }}">Delete</button></td>
				</tr>
			{{ end }}
		</table>

		<button type="submit" class="btn btn-primary" name="action" value="save">Save</button>

	</form>`)

type permissionsData struct {
	*context
	Folder core.Folder
	Form   *core.FolderPermissionsForm
}

// UsersPayload is valid JSON, and encoding/json escapes '<', so it can't close the script tag.
func (data *permissionsData) UsersPayload() (template.JS, error) {
	payload, err := data.Form.UsersPayload()
	return template.JS(payload), err
}

func (data *permissionsData) NoResults() string {
	placeholder, _ := data.Form.Picker.NoResults()
	return placeholder
}

func (data *permissionsData) Selected() string {
	selected, _ := data.Form.Picker.Selected()
	return selected
}

// Row keys are only valid within one request, so posted fields are named by user id.
func checkboxName(userID string, f core.Flag) string {
	return fmt.Sprintf("perm-%s-%s", userID, f)
}

// rowKey returns the key of the row of the given user.
func rowKey(form *core.FolderPermissionsForm, userID string) (int, bool) {
	for _, row := range form.Table.Rows() {
		if row.UserID == userID {
			return row.Key, true
		}
	}
	return 0, false
}

// getFolder returns the folder whose id is the last segment of the request path.
func getFolder(ctx *context, req *http.Request) (core.Folder, error) {
	var id = core.FolderIDFromPath(req.URL.Path)
	if id == "" {
		return core.Folder{}, core.ErrNoFolderID
	}
	folder, err := ctx.db.GetFolder(id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Folder{}, ErrNotFound
	}
	return folder, err
}

// postedForm restores the form from the hidden field and writes the posted checkbox states into its rows.
func postedForm(ctx *context, folder core.Folder, req *http.Request) (*core.FolderPermissionsForm, error) {

	records, err := core.ParsePermissions(req.PostFormValue("folderPermissions"))
	if err != nil {
		return nil, fmt.Errorf("malformed permissions: %w", err)
	}

	form, err := ctx.db.RestorePermissionsForm(folder, records)
	if err != nil {
		return nil, err
	}

	for _, row := range form.Table.Rows() {
		for _, f := range core.Flags {
			if err := form.Dispatch(core.Event{
				Kind:    core.EventToggle,
				RowKey:  row.Key,
				Flag:    f,
				Checked: req.PostFormValue(checkboxName(row.UserID, f)) != "",
			}); err != nil {
				return nil, err
			}
		}
	}

	return form, nil
}

// events translates the clicked button into form events. The query and the selection are posted with every button.
func events(req *http.Request, form *core.FolderPermissionsForm) ([]core.Event, error) {

	var evs = []core.Event{
		{Kind: core.EventFilter, Value: req.PostFormValue("query")},
		{Kind: core.EventSelect, Value: req.PostFormValue("user")},
	}

	// a repeated post may delete a row which is gone already
	if userID := req.PostFormValue("delete"); userID != "" {
		if key, ok := rowKey(form, userID); ok {
			evs = append(evs, core.Event{Kind: core.EventDelete, RowKey: key})
		}
		return evs, nil
	}

	switch action := req.PostFormValue("action"); action {
	case "", "filter", "select":
		return evs, nil
	case "add":
		return append(evs, core.Event{Kind: core.EventAdd}), nil
	case "save":
		return append(evs, core.Event{Kind: core.EventSubmit}), nil
	default:
		return nil, fmt.Errorf("unknown action: %q", action)
	}
}

func permissions(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	folder, err := getFolder(ctx, req)
	if err != nil {
		return err
	}

	var form *core.FolderPermissionsForm

	if req.Method == http.MethodPost {

		form, err = postedForm(ctx, folder, req)
		if err != nil {
			return err
		}

		evs, err := events(req, form)
		if err != nil {
			return err
		}

		for _, ev := range evs {
			if err := form.Dispatch(ev); err != nil {
				return err
			}
		}

		var last = evs[len(evs)-1]
		metrics.RecordFormEvent(string(last.Kind))

		if last.Kind == core.EventSubmit {
			if err := save(ctx, folder, form.Records()); err != nil {
				ctx.Danger(err)
			} else {
				ctx.SeeOther("/permissions/%s", folder.ID)
				return nil
			}
		}
	} else {
		form, err = ctx.db.OpenPermissionsForm(folder)
		if err != nil {
			return err
		}
	}

	// the hidden field carries the rows to the next request
	if _, err := form.Submit(); err != nil {
		return err
	}

	return permissionsTmpl.Execute(w, &permissionsData{
		context: ctx,
		Folder:  folder,
		Form:    form,
	})
}

// savePermissions consumes the hidden field of the permissions form.
func savePermissions(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	folder, err := getFolder(ctx, req)
	if err != nil {
		return err
	}

	records, err := core.ParsePermissions(req.PostFormValue("folderPermissions"))
	if err != nil {
		metrics.RecordPermissionSave(false, 0)
		ctx.Danger(fmt.Errorf("malformed permissions: %w", err))
	} else if err := save(ctx, folder, records); err != nil {
		ctx.Danger(err)
	}

	ctx.SeeOther("/permissions/%s", folder.ID)
	return nil
}

func save(ctx *context, folder core.Folder, records []core.Permission) error {

	saved, err := ctx.db.SavePermissions(folder, records)
	metrics.RecordPermissionSave(err == nil, len(saved))

	var log = ctx.db.Log.WithField("folder", folder.ID).WithField("editor", ctx.User.ID)
	if err != nil {
		log.WithError(err).Warn("rejected folder permissions")
		return err
	}

	log.WithField("rows", len(saved)).Info("saved folder permissions")
	ctx.Success("permissions of %s have been saved", folder.Name)
	return nil
}
