package routes

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/render"

	"github.com/ymurata/kaiyaku-form/app"
	"github.com/ymurata/kaiyaku-form/httpx"
	"github.com/ymurata/kaiyaku-form/log"
	"github.com/ymurata/kaiyaku-form/model"
	"github.com/ymurata/kaiyaku-form/pdf"
)

// GetForm serves the field schema with the current settings applied: hidden
// fields stripped of their required flag, option lists substituted.
func GetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings := app.Gateway.FetchSettings(r.Context())
		fields := model.ApplySettings(model.FormSchema(), settings)

		render.JSON(w, r, map[string]any{
			"fields":   fields,
			"settings": settings,
		})
	}
}

// SubmitForm validates a submission and forwards it through the gateway.
// Validation runs to completion before any network side effect; a failing
// form produces zero gateway submit calls.
func SubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission := model.Submission{}
		err := render.DecodeJSON(r.Body, &submission)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		settings := app.Gateway.FetchSettings(r.Context())
		fields := model.ApplySettings(model.FormSchema(), settings)

		if errs := model.Validate(submission, fields); len(errs) > 0 {
			log.Debugf("submit.validation: %d failing fields", len(errs))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"errors": errs})
			return
		}

		submission.Resolve(time.Now())

		if err := app.Gateway.Submit(r.Context(), submission); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadGateway, log.ErrorLevel, "gateway.submit",
				"送信に失敗しました。もう一度お試しください。")
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"status":      "ok",
			"submittedAt": submission.SubmittedAt,
		})
	}
}

// ExportPDF validates the live form data and streams the rendered document.
func ExportPDF(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submission := model.Submission{}
		err := render.DecodeJSON(r.Body, &submission)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		settings := app.Gateway.FetchSettings(r.Context())
		fields := model.ApplySettings(model.FormSchema(), settings)

		if errs := model.Validate(submission, fields); len(errs) > 0 {
			log.Debugf("export.validation: %d failing fields", len(errs))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{"errors": errs})
			return
		}

		submission.Resolve(time.Now())
		servePDF(app, w, r, submission)
	}
}

// servePDF renders a submission and writes it as a file download. A failed
// render is a blocking error: no partial file is produced.
func servePDF(app app.App, w http.ResponseWriter, r *http.Request, submission model.Submission) {
	font := app.Fonts.Load(r.Context())
	if font.Builtin() {
		w.Header().Set("X-Font-Fallback", "builtin")
	}

	document, err := pdf.Render(submission, font)
	if err != nil {
		httpx.LogStatusMsg(w, http.StatusInternalServerError, log.ErrorLevel, "pdf.render",
			"PDFの生成に失敗しました")
		return
	}

	fileName := pdf.FileName(submission.ContractorName, time.Now())
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		"attachment; filename*=UTF-8''"+url.PathEscape(fileName))
	w.Write(document)
}
