package cmd

import (
	"testing"

	"github.com/khanhnv2901/seca-pin/internal/domain/probe"
)

func TestFormatStatusWithColor(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name   string
		status string
		want   string
	}{
		{name: "verdict pass", status: "PASS", want: "PASS"},
		{name: "pass synonym", status: "ok", want: "ok"},
		{name: "verdict fail", status: "FAIL", want: "FAIL"},
		{name: "unknown", status: "pending", want: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatStatusWithColor(tt.status); got != tt.want {
				t.Fatalf("formatStatusWithColor(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestFormatScopeWithColor(t *testing.T) {
	disableColor(t)

	if got := formatScopeWithColor(probe.ScopeKnown); got != "KNOWN" {
		t.Fatalf("expected KNOWN, got %q", got)
	}
	if got := formatScopeWithColor(probe.ScopeExtended); got != "EXTENDED" {
		t.Fatalf("expected EXTENDED, got %q", got)
	}
	if got := formatScopeWithColor(probe.Scope(9)); got != "UNKNOWN" {
		t.Fatalf("expected UNKNOWN, got %q", got)
	}
}
