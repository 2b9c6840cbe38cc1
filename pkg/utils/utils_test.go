package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Ann"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "unknown field", body: `{"name":"Ann","age":3}`, wantErr: true},
		{name: "trailing object", body: `{"name":"Ann"}{"name":"Bob"}`, wantErr: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := ReadJSON(req, &dst)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ann", dst.Name)
		})
	}
}

func TestSuccessResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, SuccessResponse(rec, http.StatusCreated, payload{Name: "Ann"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"name":"Ann"}}`, rec.Body.String())
}
