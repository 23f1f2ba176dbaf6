package agent

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type actRequest struct {
	Obs []float64 `json:"obs"`
}

type actResponse struct {
	Action int     `json:"action"`
	LogP   float64 `json:"logp"`
}

// NewServerMux returns an HTTP mux exposing the agent on POST /act.
func NewServerMux(a Agent) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/act", func(w http.ResponseWriter, r *http.Request) {
		var payload actRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
		if len(payload.Obs) == 0 {
			http.Error(w, "bad request: empty observation", http.StatusBadRequest)
			return
		}

		action, logp := a.Act(payload.Obs)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(actResponse{Action: action, LogP: logp}); err != nil {
			http.Error(w, "failed to encode action: "+err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}

// StartServer serves the agent on the given port. It blocks.
func StartServer(a Agent, port string) error {
	log.Info().Msgf("starting agent server on :%s ...", port)
	return http.ListenAndServe(":"+port, NewServerMux(a))
}
