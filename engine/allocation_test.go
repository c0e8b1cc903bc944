package engine_test

import (
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/fleetcost_backend/engine"
	"github.com/shopspring/decimal"
)

func member(id int, name string, share, hours string) engine.Member {
	return engine.Member{
		Id:                     id,
		Name:                   name,
		OwnershipShare:         d(share),
		OperatingHoursPerMonth: d(hours),
		Status:                 engine.MemberActive,
	}
}

func assertAllocated(t *testing.T, allocations []engine.MemberAllocation, expected []string) {
	t.Helper()
	if len(allocations) != len(expected) {
		t.Fatalf("expected %d allocations, got %d", len(expected), len(allocations))
	}
	for i, want := range expected {
		if !allocations[i].AllocatedCost.Equal(d(want)) {
			t.Fatalf("allocation[%d] expected %s, got %s", i, want, allocations[i].AllocatedCost.String())
		}
	}
}

func TestAllocate_EqualRemainderGoesToFirstMember(t *testing.T) {
	members := []engine.Member{
		member(1, "Aye Chan", "0", "0"),
		member(2, "Thiha", "0", "0"),
		member(3, "Su Su", "0", "0"),
	}
	allocations, err := engine.Allocate(d("1000.00"), members, engine.AllocateEqual)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	assertAllocated(t, allocations, []string{"333.34", "333.33", "333.33"})
}

func TestAllocate_ByHours(t *testing.T) {
	members := []engine.Member{
		member(1, "Aye Chan", "0", "30"),
		member(2, "Thiha", "0", "10"),
	}
	allocations, err := engine.Allocate(d("100.00"), members, engine.AllocateByHours)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	assertAllocated(t, allocations, []string{"75", "25"})
}

func TestAllocate_ByHoursZeroHoursFallsBackToEqual(t *testing.T) {
	members := []engine.Member{
		member(1, "Aye Chan", "0", "0"),
		member(2, "Thiha", "0", "0"),
	}
	allocations, err := engine.Allocate(d("100.00"), members, engine.AllocateByHours)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	assertAllocated(t, allocations, []string{"50", "50"})
}

func TestAllocate_PercentageNormalizesAgainstActualSum(t *testing.T) {
	// Shares sum to 80, not 100; the split still covers the whole cost.
	members := []engine.Member{
		member(1, "Aye Chan", "30", "0"),
		member(2, "Thiha", "50", "0"),
	}
	allocations, err := engine.Allocate(d("100.00"), members, engine.AllocatePercentage)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	assertAllocated(t, allocations, []string{"37.5", "62.5"})
}

func TestAllocate_ConservationUnderAwkwardRounding(t *testing.T) {
	members := []engine.Member{
		member(1, "Aye Chan", "0", "0"),
		member(2, "Thiha", "0", "0"),
		member(3, "Su Su", "0", "0"),
	}
	total := d("100.01")
	allocations, err := engine.Allocate(total, members, engine.AllocateEqual)
	if err != nil {
		t.Fatalf("Allocate error: %v", err)
	}
	sum := decimal.Zero
	for _, a := range allocations {
		sum = sum.Add(a.AllocatedCost)
	}
	if !sum.Equal(total) {
		t.Fatalf("allocations sum to %s, expected %s", sum.String(), total.String())
	}
}

func TestAllocate_NoActiveMembers(t *testing.T) {
	_, err := engine.Allocate(d("100.00"), nil, engine.AllocateEqual)
	if !errors.Is(err, engine.ErrNoActiveMembers) {
		t.Fatalf("expected ErrNoActiveMembers, got %v", err)
	}

	allocations, err := engine.Allocate(decimal.Zero, nil, engine.AllocateEqual)
	if err != nil {
		t.Fatalf("zero cost with no members should not fail, got %v", err)
	}
	if len(allocations) != 0 {
		t.Fatalf("expected empty allocation list, got %d entries", len(allocations))
	}
}

func TestAllocate_UnsupportedMethod(t *testing.T) {
	members := []engine.Member{member(1, "Aye Chan", "0", "0")}
	if _, err := engine.Allocate(d("10"), members, engine.AllocationMethod("by_moon_phase")); err == nil {
		t.Fatal("expected error for unsupported allocation method")
	}
}
