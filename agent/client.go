package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client is an Agent backed by a remote agent server.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, client: http.DefaultClient}
}

// Act asks the remote agent for an action. A transport or decoding
// failure panics: callers treat the remote agent like a local one.
func (c *Client) Act(obs []float64) (int, float64) {
	body, err := json.Marshal(actRequest{Obs: obs})
	if err != nil {
		panic(fmt.Sprintf("failed to encode observation: %v", err))
	}

	resp, err := c.client.Post(c.baseURL+"/act", "application/json", bytes.NewReader(body))
	if err != nil {
		panic(fmt.Sprintf("failed to reach agent server: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("agent server returned status %d", resp.StatusCode))
	}

	var payload actResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		panic(fmt.Sprintf("failed to decode action: %v", err))
	}
	return payload.Action, payload.LogP
}
