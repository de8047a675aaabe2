package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteDataEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusCreated, map[string]string{"id": "x1"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content-type = %q", ct)
	}

	var env struct {
		OK   bool              `json:"ok"`
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.OK || env.Data["id"] != "x1" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestWriteErrPassesThroughClientErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErr(rec, nil, NotFound("Task not found"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	var env struct {
		OK    bool `json:"ok"`
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.OK || env.Error.Code != "NOT_FOUND" || env.Error.Message != "Task not found" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestWriteErrCoercesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErr(rec, nil, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("internal cause leaked: %s", rec.Body.String())
	}
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Error.Code != "INTERNAL" {
		t.Fatalf("code = %q", env.Error.Code)
	}
}

func TestDecodeJSONStrict(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	decode := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var p payload
		return DecodeJSON(httptest.NewRecorder(), req, 1<<10, &p)
	}

	if err := decode(`{"name":"ok"}`); err != nil {
		t.Fatalf("valid body: %v", err)
	}
	if err := decode(`{"name":"ok","extra":1}`); err == nil {
		t.Fatalf("unknown field accepted")
	}
	if err := decode(`{"name":"ok"}{"name":"again"}`); err == nil {
		t.Fatalf("trailing data accepted")
	}
	if err := decode(`{"name":"` + strings.Repeat("a", 2048) + `"}`); err == nil {
		t.Fatalf("oversized body accepted")
	}
	if err := decode(`not json`); err == nil {
		t.Fatalf("garbage accepted")
	}
}
