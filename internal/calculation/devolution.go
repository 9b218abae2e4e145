package calculation

import (
	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
)

// DevolutionResult is the output of the Devolution Solver (C5): which legal
// order applies, the reserve / disposable quota split (Art. 913, 914-1), and
// the internal split within each class of heirs before the spouse's Art. 757
// election (applied by the Share Allocator, C6) is taken into account.
type DevolutionResult struct {
	Order                   int
	ReserveFraction         sdecimal.Decimal
	DisposableQuotaFraction sdecimal.Decimal
	SpousePresent           bool
	// DescendantShares sums to 1 over the heirs in Order 1 (descendants);
	// populated only when Order == 1.
	DescendantShares map[string]sdecimal.Decimal
	// ClassShares sums to 1 over every heir entitled under Orders 2-4,
	// spouse included — there is no election to defer for these orders.
	ClassShares  map[string]sdecimal.Decimal
	CleftApplied bool
}

// SolveDevolution determines the applicable legal order (Art. 734) and the
// civil share each heir (or souche) is entitled to (§4.3).
func SolveDevolution(input domain.SimulationInput, tracer *Tracer) DevolutionResult {
	heirByID := make(map[string]domain.Heir, len(input.Heirs))
	representedBy := make(map[string][]domain.Heir, len(input.Heirs))
	for _, h := range input.Heirs {
		heirByID[h.ID] = h
		if h.RepresentedHeirID != "" {
			representedBy[h.RepresentedHeirID] = append(representedBy[h.RepresentedHeirID], h)
		}
	}

	var spouse *domain.Heir
	var descendantRoots, parentRoots, siblingRoots, otherRoots []domain.Heir
	for _, h := range input.Heirs {
		if h.RepresentedHeirID != "" {
			continue // representatives are resolved through their represented root, not as independent roots
		}
		switch h.Relationship {
		case domain.RelationSpouse:
			hh := h
			if !hh.Renounced() {
				spouse = &hh
			}
		case domain.RelationChild:
			descendantRoots = append(descendantRoots, h)
		case domain.RelationParent:
			parentRoots = append(parentRoots, h)
		case domain.RelationSibling:
			siblingRoots = append(siblingRoots, h)
		case domain.RelationGrandchild, domain.RelationGreatGrandchild:
			// only reachable as roots when no immediate-child stirpes claims them;
			// representation already attaches them under a child root above.
		case domain.RelationNephewNiece, domain.RelationOther:
			otherRoots = append(otherRoots, h)
		}
	}

	result := DevolutionResult{SpousePresent: spouse != nil}

	descendantShares := resolveGroupShares(descendantRoots, heirByID, representedBy)
	if len(descendantShares) > 0 {
		result.Order = 1
		result.DescendantShares = descendantShares
		liveRoots := countLiveRoots(descendantRoots, heirByID, representedBy)
		switch {
		case liveRoots <= 1:
			result.ReserveFraction = sdecimal.NewFromFloat(0.5)
		case liveRoots == 2:
			result.ReserveFraction = sdecimal.NewFromInt(2).Div(sdecimal.NewFromInt(3))
		default:
			result.ReserveFraction = sdecimal.NewFromFloat(0.75)
		}
		result.DisposableQuotaFraction = sdecimal.NewFromInt(1).Sub(result.ReserveFraction)
		tracer.Keys(domain.KeyDevolutionOrder1Descendants, domain.KeyReserveComputed)
		tracer.Step("DevolutionSolver", "Order 1 applies: descendants survive.", "reserve "+result.ReserveFraction.String())
		return result
	}

	if spouse != nil {
		result.Order = 2
		result.ReserveFraction = sdecimal.NewFromFloat(0.25)
		result.DisposableQuotaFraction = sdecimal.NewFromFloat(0.75)
		liveParents := livingHeirs(parentRoots)
		shares := make(map[string]sdecimal.Decimal)
		switch len(liveParents) {
		case 0:
			shares[spouse.ID] = sdecimal.NewFromInt(1)
		case 1:
			shares[spouse.ID] = sdecimal.NewFromFloat(0.75)
			shares[liveParents[0].ID] = sdecimal.NewFromFloat(0.25)
		default:
			shares[spouse.ID] = sdecimal.NewFromFloat(0.5)
			each := sdecimal.NewFromFloat(0.25)
			for _, p := range liveParents {
				shares[p.ID] = each
			}
		}
		result.ClassShares = shares
		tracer.Keys(domain.KeyDevolutionOrder2SpouseParents, domain.KeyReserveComputed)
		tracer.Step("DevolutionSolver", "Order 2 applies: spouse survives, no descendants.", "spouse share "+shares[spouse.ID].String())
		return result
	}

	liveParents := livingHeirs(parentRoots)
	siblingShares := resolveGroupShares(siblingRoots, heirByID, representedBy)
	if len(liveParents) > 0 || len(siblingShares) > 0 {
		result.Order = 3
		shares := make(map[string]sdecimal.Decimal)
		switch {
		case len(liveParents) > 0 && len(siblingShares) > 0:
			parentPortion := sdecimal.NewFromFloat(0.25)
			if len(liveParents) == 1 {
				shares[liveParents[0].ID] = parentPortion
			} else {
				for _, p := range liveParents {
					shares[p.ID] = parentPortion
				}
			}
			siblingPortion := sdecimal.NewFromInt(1).Sub(parentPortion.Mul(sdecimal.NewFromInt(int64(len(liveParents)))))
			for id, frac := range siblingShares {
				shares[id] = frac.Mul(siblingPortion)
			}
		case len(liveParents) > 0:
			each := sdecimal.NewFromInt(1).Div(sdecimal.NewFromInt(int64(len(liveParents))))
			for _, p := range liveParents {
				shares[p.ID] = each
			}
		default:
			shares = siblingShares
		}
		result.ClassShares = shares
		tracer.Keys(domain.KeyDevolutionOrder3Siblings)
		tracer.Step("DevolutionSolver", "Order 3 applies: no spouse, no descendants; parents and/or siblings survive.", "")
		return result
	}

	// Order 4: ascendants beyond parents and collaterals up to the 6th
	// degree, split 50/50 between the paternal and maternal lines (Art.
	// 746 cleft succession).
	result.Order = 4
	result.CleftApplied = true
	shares, err := resolveCleftShares(otherRoots)
	if err != nil {
		tracer.Warn(domain.SeverityError, domain.AudienceNotary, domain.CategoryData, err.Error(), domain.KeyAlertEmptyPaternalLine)
		// Fall back to an even split across all candidates so the pipeline
		// still produces a number, flagged as unreliable via the warning above.
		shares = make(map[string]sdecimal.Decimal, len(otherRoots))
		if len(otherRoots) > 0 {
			each := sdecimal.NewFromInt(1).Div(sdecimal.NewFromInt(int64(len(otherRoots))))
			for _, h := range otherRoots {
				shares[h.ID] = each
			}
		}
	}
	result.ClassShares = shares
	tracer.Keys(domain.KeyDevolutionOrder4Ascendants, domain.KeyDevolutionCleft)
	tracer.Step("DevolutionSolver", "Order 4 applies: cleft succession between paternal and maternal lines.", "")
	return result
}

func livingHeirs(heirs []domain.Heir) []domain.Heir {
	var out []domain.Heir
	for _, h := range heirs {
		if !h.Renounced() && !h.IsDeceased {
			out = append(out, h)
		}
	}
	return out
}

// resolveGroupShares computes the fractional share of each surviving heir
// (including representatives) within a group of equal-stirpes roots. Roots
// that renounce or predecease without any surviving representative vanish;
// their share is redistributed among the remaining live roots (resolved
// Open Question (b)). Returns an empty map if the whole group is extinct.
func resolveGroupShares(roots []domain.Heir, heirByID map[string]domain.Heir, representedBy map[string][]domain.Heir) map[string]sdecimal.Decimal {
	if len(roots) == 0 {
		return nil
	}
	type rootLeaves struct {
		leaves map[string]sdecimal.Decimal
	}
	perRoot := make([]rootLeaves, 0, len(roots))
	liveCount := 0
	for _, root := range roots {
		leaves := resolveSouche(root.ID, heirByID, representedBy, sdecimal.NewFromInt(1))
		if len(leaves) > 0 {
			liveCount++
		}
		perRoot = append(perRoot, rootLeaves{leaves: leaves})
	}
	if liveCount == 0 {
		return nil
	}
	final := make(map[string]sdecimal.Decimal)
	rootFraction := sdecimal.NewFromInt(1).Div(sdecimal.NewFromInt(int64(liveCount)))
	for _, rl := range perRoot {
		for id, w := range rl.leaves {
			final[id] = final[id].Add(w.Mul(rootFraction))
		}
	}
	return final
}

func countLiveRoots(roots []domain.Heir, heirByID map[string]domain.Heir, representedBy map[string][]domain.Heir) int {
	count := 0
	for _, root := range roots {
		if len(resolveSouche(root.ID, heirByID, representedBy, sdecimal.NewFromInt(1))) > 0 {
			count++
		}
	}
	return count
}

// resolveSouche recursively resolves one stirpes, returning the leaf heirs
// (who actually receive a share) weighted by weight, redistributed evenly
// among representatives at each generation that renounces or predeceases.
func resolveSouche(heirID string, heirByID map[string]domain.Heir, representedBy map[string][]domain.Heir, weight sdecimal.Decimal) map[string]sdecimal.Decimal {
	heir, ok := heirByID[heirID]
	if !ok {
		return nil
	}
	if !heir.Renounced() && !heir.IsDeceased {
		return map[string]sdecimal.Decimal{heirID: weight}
	}
	representatives := representedBy[heirID]
	if len(representatives) == 0 {
		return nil
	}
	each := weight.Div(sdecimal.NewFromInt(int64(len(representatives))))
	leaves := make(map[string]sdecimal.Decimal)
	for _, rep := range representatives {
		for id, w := range resolveSouche(rep.ID, heirByID, representedBy, each) {
			leaves[id] = leaves[id].Add(w)
		}
	}
	return leaves
}

// resolveCleftShares splits Order-4 candidates 50/50 between the paternal
// and maternal lines (Art. 746), each line divided equally among its own
// candidates. Every candidate must carry PaternalLine; if any is missing it,
// the split cannot be determined and an error is returned.
func resolveCleftShares(candidates []domain.Heir) (map[string]sdecimal.Decimal, error) {
	if len(candidates) == 0 {
		return map[string]sdecimal.Decimal{}, nil
	}
	var paternal, maternal []domain.Heir
	for _, h := range candidates {
		if h.PaternalLine == nil {
			return nil, errEmptyPaternalLine
		}
		if *h.PaternalLine {
			paternal = append(paternal, h)
		} else {
			maternal = append(maternal, h)
		}
	}
	shares := make(map[string]sdecimal.Decimal, len(candidates))
	assignLine(shares, paternal, maternal)
	return shares, nil
}

func assignLine(shares map[string]sdecimal.Decimal, paternal, maternal []domain.Heir) {
	switch {
	case len(paternal) > 0 && len(maternal) > 0:
		half := sdecimal.NewFromFloat(0.5)
		eachPaternal := half.Div(sdecimal.NewFromInt(int64(len(paternal))))
		eachMaternal := half.Div(sdecimal.NewFromInt(int64(len(maternal))))
		for _, h := range paternal {
			shares[h.ID] = eachPaternal
		}
		for _, h := range maternal {
			shares[h.ID] = eachMaternal
		}
	case len(paternal) > 0:
		each := sdecimal.NewFromInt(1).Div(sdecimal.NewFromInt(int64(len(paternal))))
		for _, h := range paternal {
			shares[h.ID] = each
		}
	case len(maternal) > 0:
		each := sdecimal.NewFromInt(1).Div(sdecimal.NewFromInt(int64(len(maternal))))
		for _, h := range maternal {
			shares[h.ID] = each
		}
	}
}

var errEmptyPaternalLine = paternalLineError{}

type paternalLineError struct{}

func (paternalLineError) Error() string {
	return "order 4 candidate is missing paternal_line; cleft succession cannot be split"
}
