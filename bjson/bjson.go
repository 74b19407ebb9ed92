// Package bjson is better json. It provides helpers for working with JSON in http handlers.
package bjson

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/log"
)

// MaxBodyBytes caps the size of request bodies read by ReadJSON.
const MaxBodyBytes = 32 << 20

// nolint
var encodedErrResp []byte = json.RawMessage(`{"message":"There was an internal server error while processing the request"}`)

// HandleError writes an appropriate error response to the given response
// writer. If the given error implements ErrorReporter, then the values from
// ErrorReport() and StatusCode() are written to the response, except in
// the case of a 5XX error, where the error is logged and a default message is
// written to the response.
func HandleError(w http.ResponseWriter, e error) {
	if r, ok := e.(errors.ClientReporter); ok {
		code := r.StatusCode()
		if code >= http.StatusInternalServerError {
			handleInternalServerError(w, e)
			return
		}

		log.Printf("Client Error: %v", e)

		WriteJSON(w, r.ClientReport(), code)

		return
	}

	handleInternalServerError(w, e)
}

// ReadJSON unmarshals JSON from the incoming request to the given struct
// pointer. Bodies larger than MaxBodyBytes are rejected.
func ReadJSON(dst interface{}, r *http.Request) error {
	op := errors.Op("bjson.ReadJSON")

	decoder := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err := decoder.Decode(dst); err != nil {
		return errors.E(op, http.StatusBadRequest, err,
			map[string]string{"message": "Could not decode JSON"})
	}

	if decoder.More() {
		return errors.E(op, http.StatusBadRequest, errors.Str("trailing data after JSON body"),
			map[string]string{"message": "Could not decode JSON"})
	}

	return nil
}

// WriteJSON writes the given interface to the response. If the interface
// cannot be marshaled, a 500 error is written instead.
func WriteJSON(w http.ResponseWriter, payload interface{}, status int) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		handleInternalServerError(w, errors.E(errors.Op("bjson.WriteJSON"), http.StatusInternalServerError, err))
	} else {
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(encoded)
	}
}

// handleInternalServerError writes the given error to stderr and returns a
// 500 response with a default message.
func handleInternalServerError(w http.ResponseWriter, e error) {
	log.Alarm(e)
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write(encodedErrResp)
}
