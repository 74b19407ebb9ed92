package bjson_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiconvo/notifier/bjson"
	"github.com/hiconvo/notifier/errors"
)

func TestReadJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ada"}`))
	require.NoError(t, bjson.ReadJSON(&dst, r))
	assert.Equal(t, "ada", dst.Name)

	for _, body := range []string{`{"name":`, `{"name":"a"} {"name":"b"}`} {
		r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := bjson.ReadJSON(&dst, r)
		require.Error(t, err, body)

		var e *errors.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, http.StatusBadRequest, e.StatusCode())
	}
}

func TestHandleError(t *testing.T) {
	w := httptest.NewRecorder()
	bjson.HandleError(w, errors.E(errors.Op("test"), errors.Validation, errors.Str("bad"),
		map[string]string{"message": "Bad things"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Bad things"}`, w.Body.String())

	w = httptest.NewRecorder()
	bjson.HandleError(w, errors.Str("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
