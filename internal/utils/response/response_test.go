package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name" validate:"required,min=2"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	require.NoError(t, WriteJSON(rec, http.StatusTeapot, GeneralError(errors.New("boom"))))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"error","error":"boom"}`, rec.Body.String())
}

func TestRequestOK(t *testing.T) {
	resp := RequestOK("done", map[string]int{"n": 1})
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, "done", resp.Message)
	assert.Empty(t, resp.Error)
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantOK    bool
		wantError string
	}{
		{"valid", `{"name":"Ann"}`, true, ""},
		{"malformed", `{"name":`, false, "invalid request body"},
		{"missing field", `{}`, false, "Name: required; "},
		{"too short", `{"name":"A"}`, false, "Name: min; "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst sample
			ok := DecodeAndValidate(rec, r, &dst)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, "Ann", dst.Name)
				assert.Zero(t, rec.Body.Len())
				return
			}

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeBody(t, rec)
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}
