package config

import (
	"fmt"
	"os"
	"time"

	sdecimal "github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// InputParser handles parsing and validation of succession input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a SimulationInput from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.SimulationInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.Validate(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// LoadLegalParametersFromFile loads the static legal-parameter table (C1)
// from a YAML file.
func (ip *InputParser) LoadLegalParametersFromFile(filename string) (*domain.LegalParameters, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var params domain.LegalParameters
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &params, nil
}

// Validate checks structural well-formedness of a SimulationInput (§7
// InputValidation). These are the only failures that abort the call; every
// other domain issue becomes a warning on the computed SuccessionOutput.
func (ip *InputParser) Validate(input *domain.SimulationInput) error {
	if input.DateOfDeath.IsZero() {
		return fmt.Errorf("date_of_death is required")
	}
	if len(input.Heirs) == 0 {
		return fmt.Errorf("at least one heir is required")
	}

	switch input.MatrimonialRegime {
	case domain.RegimeSeparation, domain.RegimeCommunityLegal, domain.RegimeCommunityUniversal, "":
	default:
		return fmt.Errorf("matrimonial_regime %q is not a recognized regime", input.MatrimonialRegime)
	}

	for i, asset := range input.Assets {
		if err := ip.validateAsset(i, &asset); err != nil {
			return fmt.Errorf("asset %d (%s): %w", i, asset.ID, err)
		}
	}

	seenHeirIDs := make(map[string]bool, len(input.Heirs))
	for i, heir := range input.Heirs {
		if err := ip.validateHeir(i, &heir); err != nil {
			return fmt.Errorf("heir %d (%s): %w", i, heir.ID, err)
		}
		seenHeirIDs[heir.ID] = true
	}

	for i, donation := range input.Donations {
		if err := ip.validateDonation(i, &donation); err != nil {
			return fmt.Errorf("donation %d (%s): %w", i, donation.ID, err)
		}
		if !seenHeirIDs[donation.BeneficiaryID] {
			return fmt.Errorf("donation %d (%s): beneficiary_id %q does not match any heir", i, donation.ID, donation.BeneficiaryID)
		}
	}

	for i, debt := range input.Debts {
		if debt.Amount.IsNegative() {
			return fmt.Errorf("debt %d (%s): amount cannot be negative", i, debt.ID)
		}
	}

	if err := ip.validateWishes(&input.Wishes, seenHeirIDs); err != nil {
		return fmt.Errorf("wishes: %w", err)
	}

	return nil
}

func (ip *InputParser) validateAsset(_ int, asset *domain.Asset) error {
	if asset.ID == "" {
		return fmt.Errorf("id is required")
	}
	if asset.EstimatedValue.IsNegative() {
		return fmt.Errorf("estimated_value cannot be negative")
	}
	switch asset.OwnershipMode {
	case domain.OwnershipFull, domain.OwnershipUsufruct, domain.OwnershipBare, domain.OwnershipIndivision, "":
	default:
		return fmt.Errorf("ownership_mode %q is not recognized", asset.OwnershipMode)
	}
	switch asset.AssetOrigin {
	case domain.OriginPersonal, domain.OriginCommunity, domain.OriginInheritance, "":
	default:
		return fmt.Errorf("asset_origin %q is not recognized", asset.AssetOrigin)
	}
	if pct := asset.CommunityFundingPercentage; !pct.IsZero() && (pct.LessThan(sdecimal.Zero) || pct.GreaterThan(sdecimal.NewFromInt(100))) {
		return fmt.Errorf("community_funding_percentage must be between 0 and 100")
	}
	if asset.IsLifeInsurance() {
		if asset.PremiumsBefore70 != nil && asset.PremiumsBefore70.IsNegative() {
			return fmt.Errorf("premiums_before_70 cannot be negative")
		}
		if asset.PremiumsAfter70 != nil && asset.PremiumsAfter70.IsNegative() {
			return fmt.Errorf("premiums_after_70 cannot be negative")
		}
	}
	return nil
}

func (ip *InputParser) validateHeir(_ int, heir *domain.Heir) error {
	if heir.ID == "" {
		return fmt.Errorf("id is required")
	}
	if heir.BirthDate.IsZero() {
		return fmt.Errorf("birth_date is required")
	}
	switch heir.Relationship {
	case domain.RelationChild, domain.RelationSpouse, domain.RelationPartner, domain.RelationParent,
		domain.RelationSibling, domain.RelationGrandchild, domain.RelationGreatGrandchild,
		domain.RelationNephewNiece, domain.RelationOther:
	default:
		return fmt.Errorf("relationship %q is not recognized", heir.Relationship)
	}
	switch heir.AcceptanceOption {
	case domain.AcceptancePureSimple, domain.AcceptanceBenefitInventory, domain.AcceptanceRenunciation, "":
	default:
		return fmt.Errorf("acceptance_option %q is not recognized", heir.AcceptanceOption)
	}
	return nil
}

func (ip *InputParser) validateDonation(_ int, donation *domain.Donation) error {
	if donation.ID == "" {
		return fmt.Errorf("id is required")
	}
	switch donation.Type {
	case domain.DonationManuel, domain.DonationPartage, domain.DonationUsage:
	default:
		return fmt.Errorf("type %q is not recognized", donation.Type)
	}
	if donation.OriginalValue.IsNegative() {
		return fmt.Errorf("original_value cannot be negative")
	}
	if donation.CurrentEstimatedValue.IsNegative() {
		return fmt.Errorf("current_estimated_value cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateWishes(wishes *domain.Wishes, heirIDs map[string]bool) error {
	switch wishes.TestamentDistribution {
	case domain.DistributionLegal, domain.DistributionSpecificBequests, domain.DistributionCustom,
		domain.DistributionSpouseAll, domain.DistributionChildrenAll, "":
	default:
		return fmt.Errorf("testament_distribution %q is not recognized", wishes.TestamentDistribution)
	}
	for i, bequest := range wishes.SpecificBequests {
		if !heirIDs[bequest.BeneficiaryID] {
			return fmt.Errorf("specific_bequests[%d]: beneficiary_id %q does not match any heir", i, bequest.BeneficiaryID)
		}
	}
	for i, share := range wishes.CustomShares {
		if !heirIDs[share.BeneficiaryID] {
			return fmt.Errorf("custom_shares[%d]: beneficiary_id %q does not match any heir", i, share.BeneficiaryID)
		}
	}
	return nil
}

// CreateExampleInput returns a minimal SimulationInput for tests and the
// CLI's `example` subcommand, mirroring the teacher's
// CreateExampleConfiguration. It leaves date_of_death unset, so Validate
// rejects it until that field is filled in.
func (ip *InputParser) CreateExampleInput() *domain.SimulationInput {
	return &domain.SimulationInput{
		DeceasedName:      "Jean Dupont",
		MatrimonialRegime: domain.RegimeCommunityLegal,
		Assets: []domain.Asset{
			{ID: "house-1", EstimatedValue: decimal.NewMoney(600000), OwnershipMode: domain.OwnershipFull, AssetOrigin: domain.OriginCommunity, CommunityFundingPercentage: sdecimal.NewFromInt(100)},
		},
		Heirs: []domain.Heir{
			{ID: "spouse-1", BirthDate: time.Date(1960, 5, 1, 0, 0, 0, 0, time.UTC), Relationship: domain.RelationSpouse, AcceptanceOption: domain.AcceptancePureSimple},
			{ID: "child-1", BirthDate: time.Date(1985, 9, 12, 0, 0, 0, 0, time.UTC), Relationship: domain.RelationChild, IsFromCurrentUnion: true, AcceptanceOption: domain.AcceptancePureSimple},
			{ID: "child-2", BirthDate: time.Date(1988, 2, 20, 0, 0, 0, 0, time.UTC), Relationship: domain.RelationChild, IsFromCurrentUnion: true, AcceptanceOption: domain.AcceptancePureSimple},
		},
		Wishes: domain.Wishes{
			TestamentDistribution: domain.DistributionLegal,
			SpouseChoice:          domain.SpouseChoiceQuarterOwnership,
		},
	}
}
