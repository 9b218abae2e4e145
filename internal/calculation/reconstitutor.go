package calculation

import (
	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// ReconstitutionResult is the output of the Estate Reconstitutor (C4): the
// fictive mass used to compute the reserve and the disposable quota (Art.
// 922), plus the net succession mass actually divided among the heirs.
type ReconstitutionResult struct {
	NetSuccessionMass   decimal.Money
	ReportedDonations   decimal.Money
	FictiveMass         decimal.Money
	DeductedDebts       decimal.Money
	DonationsByHeir      map[string]decimal.Money
}

// ReconstituteEstate reports donations back into the civil mass, deducts
// debts (with the funeral-expense cap, the halving of community debts, and
// the Art. 769 pro-rata for a debt linked to a partially-exempt asset), and
// computes the Art. 922 fictive mass (§4.2).
func ReconstituteEstate(input domain.SimulationInput, liquidation LiquidationResult, params domain.LegalParameters, tracer *Tracer) ReconstitutionResult {
	result := ReconstitutionResult{
		DonationsByHeir: make(map[string]decimal.Money, len(input.Heirs)),
	}

	assetByID := make(map[string]domain.Asset, len(input.Assets))
	for _, asset := range input.Assets {
		assetByID[asset.ID] = asset
	}

	deductedDebts := decimal.Zero()
	for _, debt := range input.Debts {
		if !debt.IsDeductible {
			continue
		}
		amount := debt.Amount
		if debt.Type == "FUNERAL" && !debt.ProofProvided && amount.GreaterThan(params.FuneralExpenseCap) {
			tracer.Warn(domain.SeverityInfo, domain.AudienceUser, domain.CategoryFiscal,
				"funeral expenses capped at the statutory deductible maximum", domain.KeyAlertFuneralCapExceeded)
			amount = params.FuneralExpenseCap
		}
		if debt.AssetOrigin == domain.OriginCommunity {
			// a debt tied to a community asset is only half the deceased's to
			// deduct, the surviving spouse bears the other half.
			amount = amount.Div(sdecimal.NewFromInt(2))
		}
		if debt.LinkedAssetID != "" {
			if linked, ok := assetByID[debt.LinkedAssetID]; ok {
				if exemptAmount, _, exempt := assetExemptAmount(linked, params); exempt && linked.EstimatedValue.IsPositive() {
					// Art. 769 CGI: a debt tied to a partially-exempt asset is
					// only deductible in proportion to the taxable portion.
					exemptionRate := exemptAmount.Decimal.Div(linked.EstimatedValue.Decimal)
					amount = amount.Mul(sdecimal.NewFromInt(1).Sub(exemptionRate))
					tracer.Keys(domain.KeyReconstitutionDebtProrated)
				}
			}
		}
		if !debt.ProofProvided {
			tracer.Warn(domain.SeverityWarning, domain.AudienceNotary, domain.CategoryData,
				"deductible debt lacks supporting proof; deducted provisionally", domain.KeyReconstitutionDebtDeducted)
		}
		deductedDebts = deductedDebts.Add(amount)
	}
	result.DeductedDebts = deductedDebts

	reportedDonations := decimal.Zero()
	for _, donation := range input.Donations {
		reportable := donation.ReportableValue()
		if reportable.IsZero() {
			continue
		}
		reportedDonations = reportedDonations.Add(reportable)
		result.DonationsByHeir[donation.BeneficiaryID] = result.DonationsByHeir[donation.BeneficiaryID].Add(reportable)
		tracer.Keys(domain.KeyReconstitutionDonationReported)
	}
	result.ReportedDonations = reportedDonations

	result.NetSuccessionMass = liquidation.DeceasedNetAssets.Sub(deductedDebts).ClampNonNegative()
	result.FictiveMass = result.NetSuccessionMass.Add(reportedDonations)

	tracer.Step("EstateReconstitutor",
		"Report prior donations and deduct debts to compute the Art. 922 fictive mass.",
		"fictive mass "+result.FictiveMass.String())

	return result
}
