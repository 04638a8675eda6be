package app_test

import (
	"math/rand"
	"testing"

	"ecoguardian/internal/app"
)

func TestRouteEstimate_Deterministic(t *testing.T) {
	a, err := app.NewRouteService(rand.New(rand.NewSource(42))).Estimate("Home", "Office")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := app.NewRouteService(rand.New(rand.NewSource(42))).Estimate("Home", "Office")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.StandardRoute != b.StandardRoute {
		t.Errorf("standard routes differ: %+v vs %+v", a.StandardRoute, b.StandardRoute)
	}
	if a.Savings != b.Savings {
		t.Errorf("savings differ: %+v vs %+v", a.Savings, b.Savings)
	}
}

func TestRouteEstimate_EcoAlwaysWins(t *testing.T) {
	svc := app.NewRouteService(rand.New(rand.NewSource(7)))
	for i := 0; i < 200; i++ {
		cmp, err := svc.Estimate("A", "B")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cmp.EcoRoute.Distance <= cmp.StandardRoute.Distance {
			t.Fatalf("eco route must be longer: eco=%v standard=%v", cmp.EcoRoute.Distance, cmp.StandardRoute.Distance)
		}
		if cmp.EcoRoute.Fuel >= cmp.StandardRoute.Fuel {
			t.Fatalf("eco route must burn less fuel: eco=%v standard=%v", cmp.EcoRoute.Fuel, cmp.StandardRoute.Fuel)
		}
		if cmp.Savings.Fuel < 0 || cmp.Savings.CO2 < 0 || cmp.Savings.Cost < 0 {
			t.Fatalf("savings must be non-negative: %+v", cmp.Savings)
		}
		if cmp.StandardRoute.Distance < 10 || cmp.StandardRoute.Distance > 30 {
			t.Fatalf("standard distance out of range: %v", cmp.StandardRoute.Distance)
		}
	}
}

func TestRouteEstimate_Waypoints(t *testing.T) {
	cmp, err := app.NewRouteService(rand.New(rand.NewSource(1))).Estimate("  Home ", "Office")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wp := cmp.EcoRoute.Waypoints
	if len(wp) != 4 {
		t.Fatalf("expected 4 waypoints, got %d", len(wp))
	}
	if wp[0] != "Start: Home" || wp[3] != "Destination: Office" {
		t.Errorf("unexpected endpoint waypoints: %v", wp)
	}
}

func TestRouteEstimate_RequiresLocations(t *testing.T) {
	svc := app.NewRouteService(rand.New(rand.NewSource(1)))
	for _, pair := range [][2]string{{"", "B"}, {"A", ""}, {"  ", "B"}} {
		if _, err := svc.Estimate(pair[0], pair[1]); err == nil {
			t.Errorf("expected error for %q -> %q", pair[0], pair[1])
		}
	}
}
