package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/settings"
)

func resetStatsFlags() {
	statsSince = ""
	statsLast = 0
	statsDecks = 0
	statsMode = ""
	statsCurveWindow = defaultCurveWindow
	statsFormat = ""
}

func TestApplyFlagOverridesOnlyChanged(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--decks", "6", "--show-count=false"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	base := model.Settings{NumberOfDecks: 2, CardSpeed: 2.5, ShowCardValue: false, ShowRunningCount: true}
	got, changed := applyFlagOverrides(cmd, base)
	if !changed {
		t.Fatalf("expected changed settings")
	}
	want := model.Settings{NumberOfDecks: 6, CardSpeed: 2.5, ShowCardValue: false, ShowRunningCount: false}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestApplyFlagOverridesClamps(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--decks", "12", "--speed", "1.2"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	got, changed := applyFlagOverrides(cmd, settings.Defaults())
	if !changed {
		t.Fatalf("expected changed settings")
	}
	if got.NumberOfDecks != settings.MaxDecks || got.CardSpeed != 1.0 {
		t.Fatalf("expected clamped settings, got %+v", got)
	}

	cmd = newRootCmd()
	if err := cmd.ParseFlags([]string{"--decks", "0", "--speed", "3.5"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	got, _ = applyFlagOverrides(cmd, settings.Defaults())
	if got.NumberOfDecks != settings.MinDecks || got.CardSpeed != settings.MaxSpeed {
		t.Fatalf("expected clamped settings, got %+v", got)
	}
}

func TestApplyFlagOverridesNoFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	base := settings.Defaults()
	base.NumberOfDecks = 5
	got, changed := applyFlagOverrides(cmd, base)
	if changed || got != base {
		t.Fatalf("expected stored settings untouched, got %+v", got)
	}
}

func TestBuildStatsConfig(t *testing.T) {
	resetStatsFlags()
	t.Cleanup(resetStatsFlags)

	statsSince = "2024-03-01"
	statsLast = 20
	statsDecks = 6
	statsMode = "Exam"
	cfg, err := buildStatsConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Since == nil || cfg.Since.Format("2006-01-02") != "2024-03-01" {
		t.Fatalf("unexpected since: %v", cfg.Since)
	}
	if cfg.Last != 20 || cfg.Decks != 6 || cfg.Mode != model.ModeExam || cfg.CurveWindow != defaultCurveWindow {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestBuildStatsConfigRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		apply func()
	}{
		{name: "since", apply: func() { statsSince = "03/01/2024" }},
		{name: "last", apply: func() { statsLast = -1 }},
		{name: "window", apply: func() { statsCurveWindow = 0 }},
		{name: "decks", apply: func() { statsDecks = 9 }},
		{name: "mode", apply: func() { statsMode = "tournament" }},
	}
	t.Cleanup(resetStatsFlags)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resetStatsFlags()
			tc.apply()
			if _, err := buildStatsConfig(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestReferenceCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"reference"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, needle := range []string{"2, 3, 4, 5, 6", "7, 8, 9", "10, J, Q, K, A"} {
		if !strings.Contains(out.String(), needle) {
			t.Fatalf("reference output missing %q:\n%s", needle, out.String())
		}
	}
}
