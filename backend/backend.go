package backend

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/scms/core"
)

var ErrNotFound = errors.New("not found")

// we need the CoreDB in the backend
type context struct {
	*core.Request
	Prefix string // with trailing slash
	db     *core.CoreDB
}

func middleware(db *core.CoreDB, prefix string, requireLoggedIn bool, f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var ctx = &context{
			Prefix:  prefix + "/",
			Request: db.NewRequest(w, req),
			db:      db,
		}
		defer ctx.Cleanup()

		if requireLoggedIn && !ctx.LoggedIn() {
			ctx.SeeOther("/login")
			return
		}

		if err := f(w, req, ctx, params); err != nil {
			db.Log.WithError(err).WithField("path", req.URL.Path).Warn("backend error")
			// probably no template has been executed, so execute error template
			errorTmpl.Execute(w, struct {
				*context
				Err error
			}{
				context: ctx,
				Err:     err,
			})
		}
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>`)

// NewBackendRouter returns the handler of all pages. The prefix must be without trailing slash.
func NewBackendRouter(db *core.CoreDB, prefix string) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	// public
	GETAndPOST("/login", middleware(db, prefix, false, login))

	// private
	router.GET("/", middleware(db, prefix, true, index))
	router.GET("/document/:id", middleware(db, prefix, true, document))
	GETAndPOST("/document/:id/edit", middleware(db, prefix, true, edit))
	GETAndPOST("/permissions/:id", middleware(db, prefix, true, permissions))
	router.POST("/save-permissions/:id", middleware(db, prefix, true, savePermissions))
	GETAndPOST("/folders", middleware(db, prefix, true, folders))
	GETAndPOST("/folders/:id/edit", middleware(db, prefix, true, folderEdit))
	router.GET("/logout", middleware(db, prefix, true, logout))
	GETAndPOST("/user/:id", middleware(db, prefix, true, user))
	GETAndPOST("/users", middleware(db, prefix, true, users))
	GETAndPOST("/users/:id/edit", middleware(db, prefix, true, userEdit))

	return router
}

func tmpl(text string) *template.Template {
	t := template.Must(backendTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

var backendTmpl = template.Must(template.New("backend").Funcs(
	template.FuncMap{
		"CheckboxName": checkboxName,
		"Flags": func() []core.Flag {
			return core.Flags
		},
	},
).Parse(`
<!DOCTYPE html>
<html>
	<head>
		<base href="{{ .Prefix }}">
		<meta charset="utf-8">
		<title>scms</title>

		<style>

			.col-form-label {
				text-align: right;
			}

			body {
				padding-bottom: 1rem;
			}

			h1 {
				font-size: 1.5rem !important;
				margin: 1rem 0 0.7rem !important;
			}

			h2 {
				font-size: 1.3rem !important;
				margin: 0.2rem 0 0.5rem !important;
			}

			table {
				margin-top: 0.5rem;
				border-bottom: 1px solid #dee2e6;
			}

		</style>
	</head>
	<body>

		{{ if .LoggedIn }}
			<nav class="navbar navbar-expand-md bg-light">
				<ul class="navbar-nav">
					<li class="nav-item">
						<a class="nav-link" href="">Overview</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="folders">Folders</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="users">Users</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="user/{{ .User.ID }}">{{ .User.Name }}</a>
					</li>
					<li class="nav-item">
						<a class="nav-link" href="logout">Logout</a>
					</li>
				</ul>
			</nav>
		{{ end }}

		<div class="container pt-3">
			{{ range .Notifications }}
				<div class="alert alert-{{ .Style }} mt-3" role="alert">{{ .Message }}</div>
			{{ end }}
			{{ template "content" . }}
		</div>

	</body>
</html>`))
