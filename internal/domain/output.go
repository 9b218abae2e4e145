package domain

import (
	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// Severity classifies how serious a Warning is.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Audience identifies who a Warning is meant for.
type Audience string

const (
	AudienceUser   Audience = "USER"
	AudienceNotary Audience = "NOTARY"
)

// Category classifies the domain a Warning belongs to (§7 taxonomy).
type Category string

const (
	CategoryLegal        Category = "LEGAL"
	CategoryFiscal       Category = "FISCAL"
	CategoryData         Category = "DATA"
	CategoryOptimization Category = "OPTIMIZATION"
)

// Warning is a non-fatal domain issue surfaced to the caller instead of an
// error (§7: the engine never throws for domain issues).
type Warning struct {
	Severity        Severity         `json:"severity"`
	Audience        Audience         `json:"audience"`
	Category        Category         `json:"category"`
	Message         string           `json:"message"`
	Details         string           `json:"details,omitempty"`
	ExplanationKeys []ExplanationKey `json:"explanation_keys,omitempty"`
}

// CalculationStep is one entry in the human-readable trace of the pipeline
// (C2 Tracer). Steps are appended in execution order and never mutated.
type CalculationStep struct {
	StepNumber    int    `json:"step_number"`
	StepName      string `json:"step_name"`
	Description   string `json:"description"`
	ResultSummary string `json:"result_summary"`
}

// GlobalMetrics aggregates the top-level figures of a simulation.
type GlobalMetrics struct {
	TotalEstateValue     decimal.Money    `json:"total_estate_value"`
	LegalReserveValue    decimal.Money    `json:"legal_reserve_value"`
	DisposableQuotaValue decimal.Money    `json:"disposable_quota_value"`
	TotalTaxAmount       decimal.Money    `json:"total_tax_amount"`
	ExplanationKeys      []ExplanationKey `json:"explanation_keys,omitempty"`
}

// LiquidationAssetDetail is one line of the matrimonial-liquidation trace,
// recording how a single asset was split.
type LiquidationAssetDetail struct {
	AssetID                string        `json:"asset_id"`
	DeceasedShare          decimal.Money `json:"deceased_share"`
	SpouseShare            decimal.Money `json:"spouse_share"`
	PreciputShare          decimal.Money `json:"preciput_share"`
	RewardApplied          decimal.Money `json:"reward_applied,omitempty"`
	ExplanationKeys        []ExplanationKey `json:"explanation_keys,omitempty"`
}

// LiquidationDetails reports the outcome of the Matrimonial Liquidator (C3).
type LiquidationDetails struct {
	Regime                  MatrimonialRegime        `json:"regime"`
	CommunityAssetsTotal    decimal.Money            `json:"community_assets_total"`
	SpouseCommunityShare    decimal.Money            `json:"spouse_community_share"`
	DeceasedCommunityShare  decimal.Money            `json:"deceased_community_share"`
	HasPreciput             bool                     `json:"has_preciput"`
	PreciputValue           decimal.Money            `json:"preciput_value"`
	Details                 []LiquidationAssetDetail `json:"details,omitempty"`
}

// SpouseDetails reports the surviving spouse's election and its fiscal effect (C6/C7).
type SpouseDetails struct {
	HasUsufruct  bool             `json:"has_usufruct"`
	UsufructValue decimal.Money   `json:"usufruct_value"`
	UsufructRate sdecimal.Decimal `json:"usufruct_rate"`
	ChoiceMade   SpouseChoice     `json:"choice_made,omitempty"`
}

// AssetBreakdown reports the final disposition of a single asset.
type AssetBreakdown struct {
	AssetID        string        `json:"asset_id"`
	EstimatedValue decimal.Money `json:"estimated_value"`
	IsLifeInsurance bool         `json:"is_life_insurance"`
	DeceasedShare  decimal.Money `json:"deceased_share"`
	SpouseShare    decimal.Money `json:"spouse_share"`
}

// TaxBracketApplication records one progressive-bracket slice applied to a
// heir's taxable base (C8 step 4).
type TaxBracketApplication struct {
	Min        sdecimal.Decimal `json:"min"`
	Max        sdecimal.Decimal `json:"max"`
	Rate       sdecimal.Decimal `json:"rate"`
	TaxedInSlice decimal.Money  `json:"taxed_in_slice"`
	TaxAmount  decimal.Money    `json:"tax_amount"`
}

// TaxCalculationDetails is the full audit trail behind one heir's tax_amount.
type TaxCalculationDetails struct {
	TaxableBase       decimal.Money            `json:"taxable_base"`
	AllowanceBase     decimal.Money            `json:"allowance_base"`
	AllowanceConsumed decimal.Money            `json:"allowance_consumed"`
	AllowanceUsed     decimal.Money            `json:"allowance_used"`
	RateApplied       sdecimal.Decimal         `json:"rate_applied,omitempty"`
	BracketsApplied   []TaxBracketApplication  `json:"brackets_applied,omitempty"`
	LifeInsuranceAddback decimal.Money         `json:"life_insurance_addback,omitempty"`
}

// HeirBreakdown is the full result for one heir: civil share, taxable base,
// tax owed, and the explanation keys grounding each figure.
type HeirBreakdown struct {
	ID                    string                `json:"id"`
	Name                  string                `json:"name"`
	LegalSharePercent     sdecimal.Decimal      `json:"legal_share_percent"`
	GrossShareValue       decimal.Money         `json:"gross_share_value"`
	TaxableBase           decimal.Money         `json:"taxable_base"`
	AbatementUsed         decimal.Money         `json:"abatement_used"`
	TaxAmount             decimal.Money         `json:"tax_amount"`
	NetShareValue         decimal.Money         `json:"net_share_value"`
	ReceivedAssets        []string              `json:"received_assets,omitempty"`
	Article757BAddback    decimal.Money         `json:"heir_757b_addbacks,omitempty"`
	TaxCalculationDetails TaxCalculationDetails `json:"tax_calculation_details"`
	ExplanationKeys       []ExplanationKey      `json:"explanation_keys,omitempty"`
}

// SuccessionOutput is the complete, self-contained result of one simulation (§6).
type SuccessionOutput struct {
	GlobalMetrics      GlobalMetrics     `json:"global_metrics"`
	HeirsBreakdown     []HeirBreakdown   `json:"heirs_breakdown"`
	LiquidationDetails LiquidationDetails `json:"liquidation_details"`
	SpouseDetails      SpouseDetails     `json:"spouse_details"`
	AssetsBreakdown    []AssetBreakdown  `json:"assets_breakdown"`
	CalculationSteps   []CalculationStep `json:"calculation_steps"`
	Warnings           []Warning         `json:"warnings"`
}
