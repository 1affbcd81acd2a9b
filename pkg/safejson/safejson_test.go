package safejson

import (
	"encoding/json"
	"testing"
)

func TestMarshalRewritesWideIntegers(t *testing.T) {
	payload := map[string]any{
		"id":    int64(9007199254740993), // 2^53 + 1
		"count": int64(42),
	}

	out, err := Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}

	id, ok := decoded["id"].(string)
	if !ok {
		t.Fatalf("expected id as string, got %T", decoded["id"])
	}
	if id != "9007199254740993" {
		t.Fatalf("expected exact id text, got %q", id)
	}

	if _, ok := decoded["count"].(float64); !ok {
		t.Fatalf("expected count to remain a number, got %T", decoded["count"])
	}
}

func TestMarshalKeepsBoundaryInteger(t *testing.T) {
	out, err := Marshal(map[string]any{"id": int64(9007199254740991)}) // 2^53 - 1
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"id":9007199254740991}` {
		t.Fatalf("expected boundary integer untouched, got %s", out)
	}
}

func TestMarshalRewritesNegativeWideIntegers(t *testing.T) {
	out, err := Marshal(map[string]any{"id": int64(-9007199254740993)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"id":"-9007199254740993"}` {
		t.Fatalf("expected negative wide integer as string, got %s", out)
	}
}

func TestMarshalKeepsDecimalFractions(t *testing.T) {
	out, err := Marshal(map[string]any{"price": 19.9})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"price":19.9}` {
		t.Fatalf("expected price to stay numeric, got %s", out)
	}
}

func TestMarshalWalksNestedStructures(t *testing.T) {
	payload := map[string]any{
		"items": []any{
			map[string]any{"productId": int64(9007199254740995), "qty": 2},
		},
	}

	out, err := Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"items":[{"productId":"9007199254740995","qty":2}]}`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}

func TestMarshalPassesNonNumericValues(t *testing.T) {
	payload := map[string]any{"name": "engrenagem", "active": true, "note": nil}

	out, err := Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if decoded["name"] != "engrenagem" || decoded["active"] != true {
		t.Fatalf("unexpected payload: %v", decoded)
	}
	if _, present := decoded["note"]; !present {
		t.Fatalf("expected null field to survive")
	}
}
