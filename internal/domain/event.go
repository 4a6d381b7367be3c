package domain

import (
	"encoding/json"
	"time"
)

// Event — доменная модель события, прочитанного из потока.
// Data хранится как сырой JSON: движку всё равно, что внутри полезной нагрузки.
type Event struct {
	EventID   string          `json:"event_id"`
	Source    string          `json:"source"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}
