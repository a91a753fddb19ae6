package httpx

import (
	"fmt"
	"net/http"

	"github.com/ymurata/kaiyaku-form/log"
)

// LogInternalError logs err under an error code and answers 500 with the
// default status text. The cause stays in the log, never in the response.
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// LogNotFound logs a debug line with the missing identifier and answers 404.
func LogNotFound(w http.ResponseWriter, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	w.WriteHeader(http.StatusNotFound)
}

// LogStatus logs the error code at the given level and answers the status
// with its default text.
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}

// LogStatusMsg logs the error code and formatted message at the given level,
// and answers the status with the message as body. Handlers use it to send
// the user-facing Japanese error strings.
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	http.Error(w, errMsg, status)
}
