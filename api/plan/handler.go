package plan

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kilianp07/powerplan/core/dispatch"
	"github.com/kilianp07/powerplan/core/model"
)

// Solver is the subset of dispatch.Manager used by the handler.
type Solver interface {
	Solve(model.Payload) (dispatch.Plan, error)
}

// NewPlanHandler returns an HTTP handler computing production plans via
// POST /productionplan. The response is the assignment array in payload
// order. Invalid payloads yield 400, unreachable loads 422.
func NewPlanHandler(solver Solver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload model.Payload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "malformed payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		result, err := solver.Solve(payload)
		if err != nil {
			if errors.Is(err, dispatch.ErrInfeasible) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result.Assignments); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
