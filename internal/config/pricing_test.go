package config

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTierTokenCost(t *testing.T) {
	a := DefaultAssumptions()
	want := map[string]float64{
		TierFree:    0.05,
		TierBasic:   0.65,
		TierStarter: 1.40,
		TierPro:     3.00,
		TierUltra:   8.15,
	}
	for _, tier := range a.Tiers {
		got := a.TierTokenCost(tier)
		if !approx(got, want[tier.Name]) {
			t.Errorf("TierTokenCost(%s) = %.4f, want %.4f", tier.Name, got, want[tier.Name])
		}
	}
}

func TestTierSharesSumTo100(t *testing.T) {
	var sum float64
	for _, tier := range DefaultTiers {
		sum += tier.Share
	}
	if !approx(sum, 100) {
		t.Fatalf("tier shares sum to %.4f, want 100", sum)
	}
}

func TestPaidUserCost(t *testing.T) {
	a := DefaultAssumptions()
	if got := a.PaidUserCost(); !approx(got, 0.243285) {
		t.Fatalf("PaidUserCost = %.6f, want 0.243285", got)
	}
	if got := a.FreeShare(); !approx(got, 85) {
		t.Fatalf("FreeShare = %.2f, want 85", got)
	}
}

func TestTierTokenCost_ZeroBlockSize(t *testing.T) {
	a := DefaultAssumptions()
	a.TokenBlockSize = 0
	if got := a.TierTokenCost(DefaultTiers[1]); got != 0 {
		t.Fatalf("TierTokenCost with zero block size = %v, want 0", got)
	}
}

func TestNormalizeProviderName(t *testing.T) {
	tests := map[string]string{
		"deepseek-chat":          "deepseek-chat",
		"DeepSeek-Chat":          "deepseek-chat",
		"deepseek-chat-20250101": "deepseek-chat",
		"deepseek-chat-v3":       "deepseek-chat",
		"unknown-model-2":        "unknown-model-2",
	}
	for in, want := range tests {
		if got := NormalizeProviderName(in); got != want {
			t.Errorf("NormalizeProviderName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProviderCost(t *testing.T) {
	if got := ProviderCost("deepseek-chat", 1_000_000, 0, false); !approx(got, 0.27) {
		t.Errorf("standard input cost = %.4f, want 0.27", got)
	}
	if got := ProviderCost("deepseek-chat", 1_000_000, 1_000_000, true); !approx(got, 0.685) {
		t.Errorf("discount cost = %.4f, want 0.685", got)
	}
	if got := ProviderCost("no-such-model", 1_000_000, 0, false); got != 0 {
		t.Errorf("unknown model cost = %.4f, want 0", got)
	}
}
