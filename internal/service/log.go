package service

import (
	"encoding/json"
	"log"
	"time"
)

// logJSON writes one structured log line to stdout. Swallowed errors (audit
// writes, best-effort storage releases) go through here so they stay visible
// server-side without affecting the caller's primary operation.
func logJSON(data map[string]any) {
	data["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		data["level"] = "info"
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal log entry: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
