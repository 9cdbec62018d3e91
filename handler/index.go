package handler

import (
	"encoding/json"
	"net/http"
)

// Handler answers the bare root route on serverless deployments where
// the full gin app is mounted elsewhere.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"service": "storefront",
		"docs":    "/swagger/index.html",
	})
}
