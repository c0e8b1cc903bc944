package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Allocate splits totalCost across the given members using the project's
// allocation method. Results preserve member order, every amount is rounded
// to 2 decimal places, and the rounded amounts always sum exactly to
// totalCost; any residual cent goes to the first member in stable order.
func Allocate(totalCost decimal.Decimal, members []Member, method AllocationMethod) ([]MemberAllocation, error) {
	if len(members) == 0 {
		if totalCost.IsPositive() {
			return nil, fmt.Errorf("%w: cannot allocate %s", ErrNoActiveMembers, totalCost.StringFixed(2))
		}
		return []MemberAllocation{}, nil
	}

	weights, err := allocationWeights(members, method)
	if err != nil {
		return nil, err
	}
	weightSum := decimal.Zero
	for _, w := range weights {
		weightSum = weightSum.Add(w)
	}

	allocations := make([]MemberAllocation, len(members))
	roundedSum := decimal.Zero
	for i, m := range members {
		share := totalCost.Mul(weights[i]).Div(weightSum).Round(2)
		allocations[i] = MemberAllocation{
			MemberId:      m.Id,
			MemberName:    m.Name,
			AllocatedCost: share,
		}
		roundedSum = roundedSum.Add(share)
	}
	if diff := totalCost.Sub(roundedSum); !diff.IsZero() {
		allocations[0].AllocatedCost = allocations[0].AllocatedCost.Add(diff)
	}
	return allocations, nil
}

// allocationWeights returns one positive weight per member. Methods whose
// natural weights sum to zero (no hours entered, no shares entered) fall
// back to an equal split rather than failing the report.
func allocationWeights(members []Member, method AllocationMethod) ([]decimal.Decimal, error) {
	weights := make([]decimal.Decimal, len(members))

	switch method {
	case AllocateEqual:
		for i := range members {
			weights[i] = decimal.NewFromInt(1)
		}
		return weights, nil
	case AllocateByHours:
		sum := decimal.Zero
		for i, m := range members {
			weights[i] = m.OperatingHoursPerMonth
			sum = sum.Add(m.OperatingHoursPerMonth)
		}
		if !sum.IsPositive() {
			return allocationWeights(members, AllocateEqual)
		}
		return weights, nil
	case AllocatePercentage:
		sum := decimal.Zero
		for i, m := range members {
			weights[i] = m.OwnershipShare
			sum = sum.Add(m.OwnershipShare)
		}
		if !sum.IsPositive() {
			return allocationWeights(members, AllocateEqual)
		}
		// Shares are normalized against their actual sum, so entries that
		// total 80 or 120 still split the whole cost.
		return weights, nil
	default:
		return nil, fmt.Errorf("unsupported allocation method %q", method)
	}
}
