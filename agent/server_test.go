package agent

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	server := httptest.NewServer(NewServerMux(NewEvaluationAgent(greedyAt2(t, 0.1))))
	defer server.Close()

	t.Run("serves actions over HTTP", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/act", "application/json",
			strings.NewReader(`{"obs": [1]}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var payload struct {
			Action int     `json:"action"`
			LogP   float64 `json:"logp"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		require.Equal(t, 2, payload.Action)
	})

	t.Run("rejects malformed requests", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/act", "application/json",
			strings.NewReader(`not json`))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects empty observations", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/act", "application/json",
			strings.NewReader(`{"obs": []}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("client round-trips through the server", func(t *testing.T) {
		client := NewClient(server.URL)

		action, logp := client.Act([]float64{1})

		require.Equal(t, 2, action)
		require.LessOrEqual(t, logp, 0.0)
	})
}
