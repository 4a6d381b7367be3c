package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Gunvolt24/wb_streams/internal/domain"
)

func TestValidateJSONLStream_Mixed(t *testing.T) {
	ctx := context.Background()
	validator := NewEventValidator()

	line1 := oneLineJSONL(minimalValidEventJSON("evt-1", "billing"))
	line2 := oneLineJSONL(minimalValidEventJSON("evt-2", "")) // invalid source
	line3 := ""                                               // пустая строка — ок
	line4 := oneLineJSONL(minimalValidEventJSON("evt-3", "shipping"))

	input := strings.Join([]string{line1, line2, line3, line4}, "\n")
	var out bytes.Buffer

	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 1 {
		t.Fatalf("unexpected counters: %+v", res)
	}

	outLines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(outLines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(outLines))
	}
	var e1, e2 domain.Event
	if err := json.Unmarshal([]byte(outLines[0]), &e1); err != nil {
		t.Fatalf("unmarshal line1: %v", err)
	}
	if err := json.Unmarshal([]byte(outLines[1]), &e2); err != nil {
		t.Fatalf("unmarshal line2: %v", err)
	}
	got := []string{e1.EventID, e2.EventID}
	wantSet := map[string]bool{"evt-1": true, "evt-3": true}
	for _, id := range got {
		if !wantSet[id] {
			t.Fatalf("unexpected event id in output: %s", id)
		}
	}
}

func TestValidateJSONLStream_LargeLine(t *testing.T) {
	ctx := context.Background()
	validator := NewEventValidator()

	bigPayload := strings.Repeat("X", 200_000) // > 64KB
	raw := `{
	  "event_id":"evt-big","source":"billing","type":"invoice.paid",
	  "data":{"blob":"` + bigPayload + `"},
	  "created_at":"2025-03-01T10:00:00Z"
	}`

	var out bytes.Buffer
	rawCompact := oneLineJSONL(raw)
	res, err := ValidateJSONLStream(ctx, validator, strings.NewReader(rawCompact+"\n"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 1 || res.InvalidLinesCount != 0 {
		t.Fatalf("unexpected counters: %+v", res)
	}
	if strings.Count(strings.TrimSpace(out.String()), "\n")+1 != 1 {
		t.Fatalf("expected 1 output line")
	}
}

// ------ функции-помощники ------

func oneLineJSONL(s string) string {
	var b bytes.Buffer
	_ = json.Compact(&b, []byte(s))
	return b.String()
}
