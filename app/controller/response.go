package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// writeJSON writes v as the JSON response body with the given status
func writeJSON(w http.ResponseWriter, status int, v any, op string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", op, err)
	}
}

// pathID returns the first path segment after prefix and whatever follows it
func pathID(path string, prefix string) (string, string) {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	id, tail, _ := strings.Cut(rest, "/")
	return id, tail
}

// parseOrderID parses a positive numeric order id
func parseOrderID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
