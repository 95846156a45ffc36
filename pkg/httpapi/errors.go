package httpapi

import (
	"net/http"

	"github.com/cuemby/chainsaw/pkg/chainsaw"
)

// errorResponse is the JSON envelope every non-2xx response carries,
// per the structured-body requirement.
type errorResponse struct {
	ErrorKind string `json:"error_kind"`
	Message   string `json:"message"`
}

// statusFor maps a chainsaw.Kind to an HTTP status code.
func statusFor(kind chainsaw.Kind) int {
	switch kind {
	case chainsaw.KindNotFound:
		return http.StatusNotFound
	case chainsaw.KindBadNamespaceName, chainsaw.KindAlreadyExists:
		return http.StatusBadRequest
	case chainsaw.KindNamespaceClosed:
		return http.StatusGone
	case chainsaw.KindConflict:
		return http.StatusConflict
	case chainsaw.KindEncoding, chainsaw.KindIo:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error) {
	kind, ok := chainsaw.KindOf(err)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			ErrorKind: "internal",
			Message:   err.Error(),
		})
		return
	}
	writeJSON(w, statusFor(kind), errorResponse{
		ErrorKind: string(kind),
		Message:   err.Error(),
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{ErrorKind: "bad_request", Message: msg})
}
