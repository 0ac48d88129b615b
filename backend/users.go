package backend

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/scms/core"
)

var usersTmpl = tmpl(`<h1>Users</h1>

	<table class="table table-sm">
		<tr>
			<th>Name</th>
			<th>Level</th>
			<th>Admin</th>
			<th>Tech</th>
			<th></th>
		</tr>
		{{ range .Users }}
			<tr>
				<td><a href="user/{{ .ID }}">{{ .Name }}</a></td>
				<td>{{ .Level }}</td>
				<td>{{ if .Admin }}yes{{ end }}</td>
				<td>{{ if .Tech }}yes{{ end }}</td>
				<td><a href="users/{{ .ID }}/edit">Edit</a></td>
			</tr>
		{{ end }}
	</table>

	<h2>Create User</h2>

	<form method="post">
		<div class="form-group row">
			<label class="col-sm-3 col-form-label">Name</label>
			<div class="col-sm-9">
				<input type="text" class="form-control" name="name" required>
			</div>
		</div>
		<div class="form-group row">
			<label class="col-sm-3 col-form-label">Email address</label>
			<div class="col-sm-9">
				<input type="email" class="form-control" name="email" required>
			</div>
		</div>
		<div class="form-group row">
			<label class="col-sm-3 col-form-label">Password</label>
			<div class="col-sm-9">
				<input type="password" class="form-control" name="password" required>
			</div>
		</div>
		<div class="form-group row">
			<label class="col-sm-3 col-form-label">Level</label>
			<div class="col-sm-9">
				<input type="number" class="form-control" name="level" min="0" max="7" value="0">
			</div>
		</div>
		<div class="form-group row">
			<div class="col-sm-9 offset-sm-3">
				<label><input type="checkbox" name="admin" value="true"> Admin</label>
				<label class="ml-3"><input type="checkbox" name="tech" value="true"> Tech</label>
			</div>
		</div>
		<button type="submit" class="btn btn-primary" name="create">Create user</button>
	</form>`)

type usersData struct {
	*context
	Users []core.User
}

type userForm struct {
	Name     string `form:"name" validate:"required,max=128"`
	Email    string `form:"email" validate:"required,email,max=128"`
	Password string `form:"password" validate:"required,min=4"`
	Level    int    `form:"level" validate:"min=0,max=7"`
	Admin    bool   `form:"admin"`
	Tech     bool   `form:"tech"`
}

func users(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		var input userForm
		if err := decodeForm(req, &input); err != nil {
			ctx.Danger(err)
			ctx.SeeOther("/users")
			return nil
		}

		u, err := ctx.db.InsertUser(
			core.User{
				Name:  input.Name,
				Email: input.Email,
				Level: input.Level,
				Admin: input.Admin,
				Tech:  input.Tech,
			},
			input.Password,
		)
		if errors.Is(err, core.ErrUserExists) {
			ctx.Danger(err)
			ctx.SeeOther("/users")
			return nil
		}
		if err != nil {
			return err
		}

		ctx.db.Log.WithField("user", u.ID).WithField("name", u.Name).Info("created user")
		ctx.Success("user %s has been created", u.Name)
		ctx.SeeOther("/users")
		return nil
	}

	all, err := ctx.db.GetAllUsers(100000, 0) // assuming there are not more than 100k users
	if err != nil {
		return err
	}

	return usersTmpl.Execute(w, &usersData{
		context: ctx,
		Users:   all,
	})
}

var userEditTmpl = tmpl(`<h1>Edit User &raquo;{{ .Edited.Name }}&laquo;</h1>

	<form method="post" action="users/{{ .Edited.ID }}/edit">
		<div class="form-group row">
			<label class="col-sm-3 col-form-label">Name</label>
			<div class="col-sm-9">
				<input type="text" class="form-control" name="name" value="{{ .Edited.Name }}" required>
			</div>
		</div>
		<div class="form-group row">
			<label class="col-sm-3 col-form-label">Email address</label>
			<div class="col-sm-9">
				<input type="email" class="form-control" name="email" value="{{ .Edited.Email }}" required>
			</div>
		</div>
		<div class="form-group row">
			<label class="col-sm-3 col-form-label">Level</label>
			<div class="col-sm-9">
				<input type="number" class="form-control" name="level" min="0" max="7" value="{{ .Edited.Level }}">
			</div>
		</div>
		<div class="form-group row">
			<div class="col-sm-9 offset-sm-3">
				<label><input type="checkbox" name="admin" value="true"{{ if .Edited.Admin }} checked{{ end }}> Admin</label>
				<label class="ml-3"><input type="checkbox" name="tech" value="true"{{ if .Edited.Tech }} checked{{ end }}> Tech</label>
			</div>
		</div>
		<button type="submit" class="btn btn-primary" name="save">Save</button>
	</form>`)

type userEditData struct {
	*context
	Edited core.User
}

// userEditForm is userForm without password, which is changed by its owner only.
type userEditForm struct {
	Name  string `form:"name" validate:"required,max=128"`
	Email string `form:"email" validate:"required,email,max=128"`
	Level int    `form:"level" validate:"min=0,max=7"`
	Admin bool   `form:"admin"`
	Tech  bool   `form:"tech"`
}

func userEdit(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	edited, err := ctx.db.GetUser(params.ByName("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if req.Method == http.MethodPost {

		var input userEditForm
		if err := decodeForm(req, &input); err != nil {
			ctx.Danger(err)
			ctx.SeeOther("/users/%s/edit", edited.ID)
			return nil
		}

		edited.Name = input.Name
		edited.Email = input.Email
		edited.Level = input.Level
		edited.Admin = input.Admin
		edited.Tech = input.Tech

		err := ctx.db.UpdateUser(edited)
		if errors.Is(err, core.ErrUserExists) {
			ctx.Danger(err)
			ctx.SeeOther("/users/%s/edit", edited.ID)
			return nil
		}
		if err != nil {
			return err
		}

		ctx.db.Log.WithField("user", edited.ID).WithField("editor", ctx.User.ID).Info("saved user")
		ctx.Success("user %s has been saved", edited.Name)
		ctx.SeeOther("/users")
		return nil
	}

	return userEditTmpl.Execute(w, &userEditData{
		context: ctx,
		Edited:  edited,
	})
}
