package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/ankur-mali/carbonaegis-v2.0/internal/model"
)

func TestComputeEntriesSimpleFactor(t *testing.T) {
	activities := []model.ActivityRecord{
		{Activity: "natural_gas", Amount: 1000}, // 1000 m3 × 0.00205 t × 1000 = 2050 kg
	}

	entries, err := ComputeEntries(activities)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Scope != model.Scope1 {
		t.Errorf("scope = %d, want 1", entries[0].Scope)
	}
	if math.Abs(entries[0].Amount-2050) > 1e-9 {
		t.Errorf("amount = %f, want 2050", entries[0].Amount)
	}
}

func TestComputeEntriesVariantFactor(t *testing.T) {
	activities := []model.ActivityRecord{
		{Activity: "electricity", Amount: 1000, Variant: "Midwest"},
		{Activity: "refrigerant", Amount: 2, Variant: "R-410A"},
	}

	entries, err := ComputeEntries(activities)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if math.Abs(entries[0].Amount-452) > 1e-9 {
		t.Errorf("electricity amount = %f, want 452", entries[0].Amount)
	}
	if entries[0].Scope != model.Scope2 {
		t.Errorf("electricity scope = %d, want 2", entries[0].Scope)
	}
	if math.Abs(entries[1].Amount-4176) > 1e-9 {
		t.Errorf("refrigerant amount = %f, want 4176", entries[1].Amount)
	}
}

func TestComputeEntriesUnknownVariantFallsBack(t *testing.T) {
	entries, err := ComputeEntries([]model.ActivityRecord{
		{Activity: "electricity", Amount: 100, Variant: "Mars"},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// 未知电网区域回退到全国平均因子
	if math.Abs(entries[0].Amount-41.6) > 1e-9 {
		t.Errorf("amount = %f, want 41.6", entries[0].Amount)
	}
}

func TestComputeEntriesUnknownActivity(t *testing.T) {
	_, err := ComputeEntries([]model.ActivityRecord{
		{Activity: "rocket_fuel", Amount: 10},
	})

	var unknownErr *UnknownActivityError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownActivityError, got %T: %v", err, err)
	}
	if unknownErr.Activity != "rocket_fuel" {
		t.Errorf("activity = %s, want rocket_fuel", unknownErr.Activity)
	}
}

func TestComputeEntriesSkipsZeroAmounts(t *testing.T) {
	entries, err := ComputeEntries([]model.ActivityRecord{
		{Activity: "natural_gas", Amount: 0},
		{Activity: "gasoline", Amount: 100},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Category != "gasoline" {
		t.Errorf("category = %s, want gasoline", entries[0].Category)
	}
}

func TestFactorCatalogCoversAllScopes(t *testing.T) {
	seen := map[model.Scope]bool{}
	for _, f := range Factors() {
		if !f.Scope.Valid() {
			t.Errorf("factor %s has invalid scope %d", f.Activity, f.Scope)
		}
		seen[f.Scope] = true

		if f.Variants == nil && f.Value <= 0 {
			t.Errorf("factor %s has non-positive value", f.Activity)
		}
		if f.Variants != nil {
			if _, ok := f.Variants[f.DefaultVariant]; !ok {
				t.Errorf("factor %s default variant %q missing from variants", f.Activity, f.DefaultVariant)
			}
		}
	}
	for _, scope := range []model.Scope{model.Scope1, model.Scope2, model.Scope3} {
		if !seen[scope] {
			t.Errorf("factor catalog has no %s activities", scope)
		}
	}
}

func TestLookupFactor(t *testing.T) {
	f, ok := LookupFactor("hotel_stays")
	if !ok {
		t.Fatal("hotel_stays should exist")
	}
	if f.Scope != model.Scope3 || f.Unit != "room-night" {
		t.Errorf("unexpected factor: %+v", f)
	}

	if _, ok := LookupFactor("nonexistent"); ok {
		t.Error("nonexistent activity should not resolve")
	}
}
