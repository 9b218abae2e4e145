package domain

import (
	"time"

	"github.com/rpgo/succession-calculator/pkg/dateutil"
	"github.com/rpgo/succession-calculator/pkg/decimal"
	sdecimal "github.com/shopspring/decimal"
)

// OwnershipMode describes how an asset is held at the moment of death.
type OwnershipMode string

const (
	OwnershipFull       OwnershipMode = "FULL"
	OwnershipUsufruct   OwnershipMode = "USUFRUCT"
	OwnershipBare       OwnershipMode = "BARE"
	OwnershipIndivision OwnershipMode = "INDIVISION"
)

// AssetOrigin classifies an asset for matrimonial liquidation purposes.
type AssetOrigin string

const (
	OriginPersonal    AssetOrigin = "PERSONAL"
	OriginCommunity   AssetOrigin = "COMMUNITY"
	OriginInheritance AssetOrigin = "INHERITANCE"
)

// UsufructType distinguishes a lifetime usufruct from a fixed-term one (Art. 669).
type UsufructType string

const (
	UsufructViager     UsufructType = "VIAGER"
	UsufructTemporaire UsufructType = "TEMPORAIRE"
)

// LifeInsuranceContractType selects which fiscal regime governs a contract.
type LifeInsuranceContractType string

const (
	ContractStandard      LifeInsuranceContractType = "STANDARD"
	ContractVieGeneration LifeInsuranceContractType = "VIE_GENERATION"
	ContractAncien        LifeInsuranceContractType = "ANCIEN_CONTRAT"
)

// MatrimonialRegime is the deceased's marital property regime.
type MatrimonialRegime string

const (
	RegimeSeparation         MatrimonialRegime = "SEPARATION"
	RegimeCommunityLegal     MatrimonialRegime = "COMMUNITY_LEGAL"
	RegimeCommunityUniversal MatrimonialRegime = "COMMUNITY_UNIVERSAL"
)

// Asset is a single item of patrimony owned, wholly or partly, by the deceased.
// A life-insurance contract is any asset with a non-nil premium field; such
// assets never enter the succession mass (I6) and are taxed separately by C9.
type Asset struct {
	ID                         string                     `yaml:"id" json:"id"`
	EstimatedValue             decimal.Money              `yaml:"estimated_value" json:"estimated_value"`
	OwnershipMode              OwnershipMode              `yaml:"ownership_mode" json:"ownership_mode"`
	AssetOrigin                AssetOrigin                `yaml:"asset_origin" json:"asset_origin"`
	AcquisitionDate            *time.Time                 `yaml:"acquisition_date,omitempty" json:"acquisition_date,omitempty"`
	UsufructuaryBirthDate      *time.Time                 `yaml:"usufructuary_birth_date,omitempty" json:"usufructuary_birth_date,omitempty"`
	UsufructType               UsufructType               `yaml:"usufruct_type,omitempty" json:"usufruct_type,omitempty"`
	UsufructDurationYears      *int                       `yaml:"usufruct_duration_years,omitempty" json:"usufruct_duration_years,omitempty"`
	CommunityFundingPercentage sdecimal.Decimal           `yaml:"community_funding_percentage" json:"community_funding_percentage"`
	IsMainResidence            bool                       `yaml:"is_main_residence,omitempty" json:"is_main_residence,omitempty"`
	SpouseOccupiesProperty     bool                       `yaml:"spouse_occupies_property,omitempty" json:"spouse_occupies_property,omitempty"`
	PremiumsBefore70           *decimal.Money             `yaml:"premiums_before_70,omitempty" json:"premiums_before_70,omitempty"`
	PremiumsAfter70            *decimal.Money             `yaml:"premiums_after_70,omitempty" json:"premiums_after_70,omitempty"`
	LifeInsuranceContractType  LifeInsuranceContractType  `yaml:"life_insurance_contract_type,omitempty" json:"life_insurance_contract_type,omitempty"`
	LifeInsuranceBeneficiaries []LifeInsuranceBeneficiary `yaml:"life_insurance_beneficiaries,omitempty" json:"life_insurance_beneficiaries,omitempty"`
	SubscriberType             string                     `yaml:"subscriber_type,omitempty" json:"subscriber_type,omitempty"`
	CCAValue                   decimal.Money              `yaml:"cca_value,omitempty" json:"cca_value,omitempty"`
	ProfessionalExemption      *sdecimal.Decimal          `yaml:"professional_exemption,omitempty" json:"professional_exemption,omitempty"`
	IsDutreilPact              bool                       `yaml:"is_dutreil_pact,omitempty" json:"is_dutreil_pact,omitempty"`
	IsRuralGoods               bool                       `yaml:"is_rural_goods,omitempty" json:"is_rural_goods,omitempty"`
	ReceivedFromParentID       string                     `yaml:"received_from_parent_id,omitempty" json:"received_from_parent_id,omitempty"`
	LocationCountry            string                     `yaml:"location_country,omitempty" json:"location_country,omitempty"`
}

// LifeInsuranceBeneficiary attributes a share of a contract, optionally dismembered
// between a usufructuary and a bare owner.
type LifeInsuranceBeneficiary struct {
	HeirID        string           `yaml:"heir_id" json:"heir_id"`
	SharePercent  sdecimal.Decimal `yaml:"share_percent" json:"share_percent"`
	OwnershipMode OwnershipMode    `yaml:"ownership_mode,omitempty" json:"ownership_mode,omitempty"` // FULL, USUFRUCT or BARE
}

// IsLifeInsurance reports whether the asset is a life-insurance contract, per I6.
func (a Asset) IsLifeInsurance() bool {
	return a.PremiumsBefore70 != nil || a.PremiumsAfter70 != nil
}

// Relationship is the heir's legal tie to the deceased.
type Relationship string

const (
	RelationChild           Relationship = "CHILD"
	RelationSpouse          Relationship = "SPOUSE"
	RelationPartner         Relationship = "PARTNER"
	RelationParent          Relationship = "PARENT"
	RelationSibling         Relationship = "SIBLING"
	RelationGrandchild      Relationship = "GRANDCHILD"
	RelationGreatGrandchild Relationship = "GREAT_GRANDCHILD"
	RelationNephewNiece     Relationship = "NEPHEW_NIECE"
	RelationOther           Relationship = "OTHER"
)

// AdoptionType records whether and how an heir was adopted (Art. 786).
type AdoptionType string

const (
	AdoptionNone   AdoptionType = "NONE"
	AdoptionFull   AdoptionType = "FULL"
	AdoptionSimple AdoptionType = "SIMPLE"
)

// AcceptanceOption is the heir's choice under Art. 768 et seq.
type AcceptanceOption string

const (
	AcceptancePureSimple       AcceptanceOption = "PURE_SIMPLE"
	AcceptanceBenefitInventory AcceptanceOption = "BENEFIT_INVENTORY"
	AcceptanceRenunciation     AcceptanceOption = "RENUNCIATION"
)

// Heir is a person (or, via representation, a line of descendants) called to the succession.
type Heir struct {
	ID                        string           `yaml:"id" json:"id"`
	Name                      string           `yaml:"name,omitempty" json:"name,omitempty"`
	BirthDate                 time.Time        `yaml:"birth_date" json:"birth_date"`
	Relationship              Relationship     `yaml:"relationship" json:"relationship"`
	IsFromCurrentUnion        bool             `yaml:"is_from_current_union" json:"is_from_current_union"`
	RepresentedHeirID         string           `yaml:"represented_heir_id,omitempty" json:"represented_heir_id,omitempty"`
	IsDisabled                bool             `yaml:"is_disabled,omitempty" json:"is_disabled,omitempty"`
	AdoptionType              AdoptionType     `yaml:"adoption_type,omitempty" json:"adoption_type,omitempty"`
	HasReceivedContinuousCare bool             `yaml:"has_received_continuous_care,omitempty" json:"has_received_continuous_care,omitempty"`
	AcceptanceOption          AcceptanceOption `yaml:"acceptance_option" json:"acceptance_option"`
	HasRenounced              bool             `yaml:"has_renounced,omitempty" json:"has_renounced,omitempty"`
	PaternalLine              *bool            `yaml:"paternal_line,omitempty" json:"paternal_line,omitempty"`
	IsDeceased                bool             `yaml:"is_deceased,omitempty" json:"is_deceased,omitempty"`
}

// Age returns the heir's age at the given date.
func (h Heir) Age(atDate time.Time) int {
	return dateutil.Age(h.BirthDate, atDate)
}

// Renounced reports whether this heir is excluded from devolution absent representation.
func (h Heir) Renounced() bool {
	return h.HasRenounced || h.AcceptanceOption == AcceptanceRenunciation
}

// DonationType selects the civil reportability rule applied to a prior gift.
type DonationType string

const (
	DonationManuel  DonationType = "DON_MANUEL"
	DonationPartage DonationType = "DONATION_PARTAGE"
	DonationUsage   DonationType = "PRESENT_USAGE"
)

// Donation is a gift made by the deceased before death.
type Donation struct {
	ID                    string        `yaml:"id" json:"id"`
	Type                  DonationType  `yaml:"type" json:"type"`
	BeneficiaryID         string        `yaml:"beneficiary_id" json:"beneficiary_id"`
	DonationDate          time.Time     `yaml:"donation_date" json:"donation_date"`
	OriginalValue         decimal.Money `yaml:"original_value" json:"original_value"`
	CurrentEstimatedValue decimal.Money `yaml:"current_estimated_value" json:"current_estimated_value"`
	IsDeclaredToTax       bool          `yaml:"is_declared_to_tax" json:"is_declared_to_tax"`
}

// ReportableValue returns the value that re-enters the succession mass for civil
// reconstitution purposes (Art. 843 et seq). PRESENT_USAGE never reports.
func (d Donation) ReportableValue() decimal.Money {
	switch d.Type {
	case DonationManuel:
		if !d.CurrentEstimatedValue.IsZero() {
			return d.CurrentEstimatedValue
		}
		return d.OriginalValue
	case DonationPartage:
		return d.OriginalValue
	default: // PRESENT_USAGE
		return decimal.Zero()
	}
}

// Debt is a liability of the deceased, possibly linked to a specific asset.
type Debt struct {
	ID            string        `yaml:"id" json:"id"`
	Amount        decimal.Money `yaml:"amount" json:"amount"`
	Type          string        `yaml:"type" json:"type"`
	IsDeductible  bool          `yaml:"is_deductible" json:"is_deductible"`
	LinkedAssetID string        `yaml:"linked_asset_id,omitempty" json:"linked_asset_id,omitempty"`
	AssetOrigin   AssetOrigin   `yaml:"asset_origin,omitempty" json:"asset_origin,omitempty"`
	ProofProvided bool          `yaml:"proof_provided,omitempty" json:"proof_provided,omitempty"`
}

// TestamentDistribution selects which allocation mode the Share Allocator applies.
type TestamentDistribution string

const (
	DistributionLegal            TestamentDistribution = "LEGAL"
	DistributionSpecificBequests TestamentDistribution = "SPECIFIC_BEQUESTS"
	DistributionCustom           TestamentDistribution = "CUSTOM"
	DistributionSpouseAll        TestamentDistribution = "SPOUSE_ALL"
	DistributionChildrenAll      TestamentDistribution = "CHILDREN_ALL"
)

// SpouseChoice is the surviving spouse's election under Art. 757.
type SpouseChoice string

const (
	SpouseChoiceUsufruct        SpouseChoice = "USUFRUCT"
	SpouseChoiceQuarterOwnership SpouseChoice = "QUARTER_OWNERSHIP"
	SpouseChoiceDisposableQuota SpouseChoice = "DISPOSABLE_QUOTA"
)

// SpecificBequest assigns a percentage of one asset's value to one beneficiary.
type SpecificBequest struct {
	AssetID         string           `yaml:"asset_id" json:"asset_id"`
	BeneficiaryID   string           `yaml:"beneficiary_id" json:"beneficiary_id"`
	SharePercentage sdecimal.Decimal `yaml:"share_percentage" json:"share_percentage"`
}

// CustomShare assigns a flat percentage of the estate to one beneficiary.
type CustomShare struct {
	BeneficiaryID string           `yaml:"beneficiary_id" json:"beneficiary_id"`
	Percentage    sdecimal.Decimal `yaml:"percentage" json:"percentage"`
}

// Wishes captures the deceased's testamentary intentions.
type Wishes struct {
	HasSpouseDonation     bool                  `yaml:"has_spouse_donation" json:"has_spouse_donation"`
	TestamentDistribution TestamentDistribution `yaml:"testament_distribution" json:"testament_distribution"`
	SpecificBequests      []SpecificBequest     `yaml:"specific_bequests,omitempty" json:"specific_bequests,omitempty"`
	CustomShares          []CustomShare         `yaml:"custom_shares,omitempty" json:"custom_shares,omitempty"`
	SpouseChoice          SpouseChoice          `yaml:"spouse_choice,omitempty" json:"spouse_choice,omitempty"`
}

// MatrimonialAdvantages holds the marital-contract clauses that modify the
// default 50/50 community split.
type MatrimonialAdvantages struct {
	HasFullAttribution    bool             `yaml:"has_full_attribution,omitempty" json:"has_full_attribution,omitempty"`
	HasPreciput           bool             `yaml:"has_preciput,omitempty" json:"has_preciput,omitempty"`
	PreciputAssetIDs      []string         `yaml:"preciput_asset_ids,omitempty" json:"preciput_asset_ids,omitempty"`
	HasUnequalShare       bool             `yaml:"has_unequal_share,omitempty" json:"has_unequal_share,omitempty"`
	SpouseSharePercentage sdecimal.Decimal `yaml:"spouse_share_percentage,omitempty" json:"spouse_share_percentage,omitempty"`
}

// SimulationInput is the complete, fully-typed snapshot the pipeline consumes.
// It is immutable for the duration of the computation.
type SimulationInput struct {
	DeceasedName          string                `yaml:"deceased_name" json:"deceased_name"`
	DateOfDeath           time.Time             `yaml:"date_of_death" json:"date_of_death"`
	MarriageDate          *time.Time            `yaml:"marriage_date,omitempty" json:"marriage_date,omitempty"`
	MatrimonialRegime     MatrimonialRegime     `yaml:"matrimonial_regime" json:"matrimonial_regime"`
	MatrimonialAdvantages MatrimonialAdvantages `yaml:"matrimonial_advantages,omitempty" json:"matrimonial_advantages,omitempty"`
	Assets                []Asset               `yaml:"assets" json:"assets"`
	Heirs                 []Heir                `yaml:"heirs" json:"heirs"`
	Donations             []Donation            `yaml:"donations,omitempty" json:"donations,omitempty"`
	Debts                 []Debt                `yaml:"debts,omitempty" json:"debts,omitempty"`
	Wishes                Wishes                `yaml:"wishes" json:"wishes"`
}
