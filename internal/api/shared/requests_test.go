package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr error
		errText string
		want    payload
	}{
		{name: "valid", body: `{"name":"Ana","age":30}`, want: payload{Name: "Ana", Age: 30}},
		{name: "unknown fields ignored", body: `{"name":"Ana","extra":true}`, want: payload{Name: "Ana"}},
		{name: "trailing comma", body: `{"name":"Ana",}`, errText: "invalid character"},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
	}

	for _, tc := range tests {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var got payload
			err := DecodeJSON(req, &got)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errText != "":
				assert.ErrorContains(t, err, tc.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
