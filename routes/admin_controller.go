package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ymurata/kaiyaku-form/app"
	"github.com/ymurata/kaiyaku-form/httpx"
	"github.com/ymurata/kaiyaku-form/log"
	"github.com/ymurata/kaiyaku-form/model"
	"github.com/ymurata/kaiyaku-form/routes/middlewares"
)

func jsonError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	w.WriteHeader(status)
	render.JSON(w, r, map[string]string{"error": msg})
}

// Login verifies the admin password through the gateway and issues a session
// token. The credential is cached with the session because admin reads
// re-authenticate with it.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if !app.Gateway.VerifyPassword(r.Context(), body.Password) {
			log.Debug("admin.login: password rejected")
			jsonError(w, r, http.StatusUnauthorized, "パスワードが正しくありません")
			return
		}

		token, err := app.Store.CreateSession(r.Context(), body.Password)
		if err != nil {
			httpx.LogInternalError(w, "admin.login.session", err)
			return
		}

		// The cookie lets the private admin pages load in a browser.
		http.SetCookie(w, &http.Cookie{
			Name:     middlewares.SessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		render.JSON(w, r, map[string]string{"token": token})
	}
}

// Logout destroys the session and with it the cached credential.
func Logout(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middlewares.Token(r.Context())
		if err := app.Store.DeleteSession(r.Context(), token); err != nil {
			httpx.LogInternalError(w, "admin.logout", err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:   middlewares.SessionCookie,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

func GetSettings(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, app.Gateway.FetchSettings(r.Context()))
	}
}

// SaveSettings persists the settings record through the gateway, which also
// mirrors it to the local fallback store.
func SaveSettings(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings := model.Settings{}
		err := render.DecodeJSON(r.Body, &settings)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := app.Gateway.SaveSettings(r.Context(), settings); err != nil {
			log.Errorf("admin.save_settings: %s", err)
			jsonError(w, r, http.StatusBadGateway, "保存に失敗しました。もう一度お試しください。")
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

// ChangePassword rejects mismatched or too-short passwords locally; the
// gateway is only reached with a well-formed request.
func ChangePassword(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
			ConfirmPassword string `json:"confirmPassword"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if body.NewPassword != body.ConfirmPassword {
			jsonError(w, r, http.StatusUnprocessableEntity, "新しいパスワードが一致しません")
			return
		}
		if len([]rune(body.NewPassword)) < 4 {
			jsonError(w, r, http.StatusUnprocessableEntity, "パスワードは4文字以上で入力してください")
			return
		}

		if err := app.Gateway.ChangePassword(r.Context(), body.CurrentPassword, body.NewPassword); err != nil {
			log.Errorf("admin.change_password: %s", err)
			jsonError(w, r, http.StatusBadGateway, "パスワード変更に失敗しました")
			return
		}

		render.JSON(w, r, map[string]string{"status": "ok"})
	}
}

// ListSubmissions serves the stored records in whatever order the gateway
// returns them.
func ListSubmissions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password := middlewares.Password(r.Context())
		render.JSON(w, r, app.Gateway.ListSubmissions(r.Context(), password))
	}
}

func storedSubmission(app app.App, w http.ResponseWriter, r *http.Request) (model.Submission, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.index")
		return model.Submission{}, false
	}

	password := middlewares.Password(r.Context())
	submissions := app.Gateway.ListSubmissions(r.Context(), password)
	if index < 0 || index >= len(submissions) {
		httpx.LogNotFound(w, "admin.get_submission", index)
		return model.Submission{}, false
	}
	return submissions[index], true
}

// GetSubmission serves the detail view: every field of one stored record
// grouped under the four themed sections.
func GetSubmission(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission, ok := storedSubmission(app, w, r)
		if !ok {
			return
		}

		submission.InspectionTime = model.NormalizeInspectionTime(submission.InspectionTime)
		render.JSON(w, r, map[string]any{
			"submission": submission,
			"sections":   model.Sections(submission),
		})
	}
}

// ExportSubmissionPDF renders one stored record as the downloadable form.
func ExportSubmissionPDF(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission, ok := storedSubmission(app, w, r)
		if !ok {
			return
		}
		servePDF(app, w, r, submission)
	}
}
