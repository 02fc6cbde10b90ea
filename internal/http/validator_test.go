package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAndValidate(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		target  any
		wantErr string
	}{
		{"valid player", `{"name":"Alice"}`, &registerPlayerRequest{}, ""},
		{"empty name", `{"name":""}`, &registerPlayerRequest{}, ""},
		{"missing name", `{}`, &registerPlayerRequest{}, "Name is required"},
		{"null name", `{"name":null}`, &registerPlayerRequest{}, "Name is required"},
		{"malformed json", `{"name":`, &registerPlayerRequest{}, "invalid request body"},
		{"valid match", `{"winner":1,"loser":2}`, &reportMatchRequest{}, ""},
		{"missing loser", `{"winner":1}`, &reportMatchRequest{}, "Loser is required"},
		{"negative winner", `{"winner":-1,"loser":2}`, &reportMatchRequest{}, "Winner must be greater than 0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest("POST", "/", strings.NewReader(tc.body))
			require.NoError(t, err)

			err = decodeAndValidate(req, tc.target)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
