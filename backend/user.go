package backend

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/scms/core"
)

var userTmpl = tmpl(`<h1>User &raquo;{{ .Selected.Name }}&laquo;</h1>

	<p class="user-title">{{ .Selected.Title }}</p>

	{{ if .Own }}
		<h2>Change Password</h2>

		<form method="post">

			<div class="form-group row">
				<label class="col-sm-6 col-form-label">Current password</label>
				<div class="col-sm-6">
					<input type="password" class="form-control" name="old">
				</div>
			</div>

			<div class="form-group row">
				<label class="col-sm-6 col-form-label">New password</label>
				<div class="col-sm-6">
					<input type="password" class="form-control" name="new1">
				</div>
			</div>

			<div class="form-group row">
				<label class="col-sm-6 col-form-label">Repeat new password</label>
				<div class="col-sm-6">
					<input type="password" class="form-control" name="new2">
				</div>
			</div>

			<button type="submit" class="btn btn-primary" name="change">Change password</button>

		</form>
	{{ end }}`)

type userData struct {
	*context
	Selected core.User
}

func (data *userData) Own() bool {
	return data.User.ID == data.Selected.ID
}

type passwordForm struct {
	Old  string `form:"old" validate:"required"`
	New1 string `form:"new1" validate:"required,min=4"`
	New2 string `form:"new2" validate:"eqfield=New1"`
}

func user(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	selected, err := ctx.db.GetUser(params.ByName("id"))
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var data = &userData{
		context:  ctx,
		Selected: selected,
	}

	if req.Method == http.MethodPost {

		if !data.Own() {
			return errors.New("you can only change your own password")
		}

		var input passwordForm
		if err := decodeForm(req, &input); err != nil {
			ctx.Danger(err)
			ctx.SeeOther("/user/%s", selected.ID)
			return nil
		}

		if _, err := ctx.db.LoginUser(selected.Email, input.Old); err != nil {
			ctx.Danger(errors.New("wrong password"))
			ctx.SeeOther("/user/%s", selected.ID)
			return nil
		}

		if err := ctx.db.SetPassword(selected, input.New1); err != nil {
			return err
		}

		ctx.Success("password changed")
		ctx.SeeOther("/user/%s", selected.ID)
		return nil
	}

	return userTmpl.Execute(w, data)
}
