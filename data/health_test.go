package data

import (
	"context"
	"errors"
	"testing"
)

func TestHealth(t *testing.T) {
	ok := Check{Name: "ok", Probe: func(context.Context) error { return nil }}
	bad := Check{Name: "bad", Probe: func(context.Context) error { return errors.New("unreachable") }}

	h := Health(context.Background(), ok)
	if h["status"] != "healthy" {
		t.Fatalf("expected healthy, got %v", h["status"])
	}

	h = Health(context.Background(), ok, bad)
	if h["status"] != "degraded" {
		t.Fatalf("expected degraded, got %v", h["status"])
	}
	services := h["services"].(map[string]any)
	if services["bad"].(map[string]any)["error"] != "unreachable" {
		t.Errorf("expected error to be reported, got %v", services["bad"])
	}
	if services["ok"].(map[string]any)["healthy"] != true {
		t.Errorf("expected ok to be healthy")
	}
}

func TestSearchCheckWithoutClient(t *testing.T) {
	if err := SearchCheck(nil).Probe(context.Background()); err == nil {
		t.Fatalf("expected error for missing client")
	}
}
