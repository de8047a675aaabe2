package httpapi

import (
	"encoding/json"
	"testing"
)

func TestOptionalTriState(t *testing.T) {
	type patch struct {
		Description Optional[string] `json:"description"`
	}

	var absent patch
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("absent: %v", err)
	}
	if absent.Description.Set {
		t.Fatalf("absent field marked set")
	}

	var null patch
	if err := json.Unmarshal([]byte(`{"description":null}`), &null); err != nil {
		t.Fatalf("null: %v", err)
	}
	if !null.Description.Set || !null.Description.Null {
		t.Fatalf("null = %+v", null.Description)
	}
	if got := null.Description.Get(); got != nil {
		t.Fatalf("Get() on null = %v, want nil", got)
	}

	var val patch
	if err := json.Unmarshal([]byte(`{"description":"hello"}`), &val); err != nil {
		t.Fatalf("value: %v", err)
	}
	if !val.Description.Set || val.Description.Null || val.Description.Value != "hello" {
		t.Fatalf("value = %+v", val.Description)
	}
	if got := val.Description.Get(); got == nil || *got != "hello" {
		t.Fatalf("Get() = %v", got)
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	type patch struct {
		Count Optional[int] `json:"count"`
	}
	var p patch
	if err := json.Unmarshal([]byte(`{"count":"three"}`), &p); err == nil {
		t.Fatalf("string accepted for int field")
	}
}
