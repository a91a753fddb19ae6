package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ymurata/kaiyaku-form/app"
	"github.com/ymurata/kaiyaku-form/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.
		With(middlewares.Session(app.Store)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/form", GetForm(app))
	api.Post("/submissions", SubmitForm(app))
	api.Post("/submissions/pdf", ExportPDF(app))

	api.Route("/admin", func(r chi.Router) {
		r.Post("/login", Login(app))

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Session(app.Store))

			r.Post("/logout", Logout(app))
			r.Get("/settings", GetSettings(app))
			r.Put("/settings", SaveSettings(app))
			r.Post("/password", ChangePassword(app))
			r.Get("/submissions", ListSubmissions(app))
			r.Get(`/submissions/{index:^\d+$}`, GetSubmission(app))
			r.Get(`/submissions/{index:^\d+$}/pdf`, ExportSubmissionPDF(app))
		})
	})

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
