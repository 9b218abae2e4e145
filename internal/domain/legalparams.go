package domain

import (
	"github.com/rpgo/succession-calculator/pkg/decimal"
	sdecimal "github.com/shopspring/decimal"
)

// LegalParameters is the static legal-parameter table (C1): tax brackets,
// allowances, the usufruct scale, and other thresholds that change only when
// the finance law changes. It is loaded once per process and is read-only for
// the lifetime of every simulation that references it — mirroring the
// teacher's FederalRules, which is likewise loaded once and passed by value
// into every calculator.
type LegalParameters struct {
	Metadata               LegalParametersMetadata `yaml:"metadata" json:"metadata"`
	Allowances             Allowances              `yaml:"allowances" json:"allowances"`
	DirectLineBrackets     []TaxBracket            `yaml:"direct_line_brackets" json:"direct_line_brackets"`
	SiblingBrackets        []TaxBracket            `yaml:"sibling_brackets" json:"sibling_brackets"`
	OtherRates             OtherRelationRates      `yaml:"other_rates" json:"other_rates"`
	UsufructScale          []UsufructScaleStep     `yaml:"usufruct_scale" json:"usufruct_scale"`
	TemporaryUsufructRate  sdecimal.Decimal        `yaml:"temporary_usufruct_rate_per_decade" json:"temporary_usufruct_rate_per_decade"` // 0.23 (Art. 669 II)
	LifeInsurance          LifeInsuranceParameters `yaml:"life_insurance" json:"life_insurance"`
	FuneralExpenseCap      decimal.Money           `yaml:"funeral_expense_cap" json:"funeral_expense_cap"`
	RightOfReturnCap       sdecimal.Decimal        `yaml:"right_of_return_cap" json:"right_of_return_cap"` // fraction of asset value per parent, e.g. 0.25
	RecallYears            int                     `yaml:"recall_years" json:"recall_years"`              // 15-year recall window (Art. 784)
	RuralGoodsExemption    RuralGoodsExemption     `yaml:"rural_goods_exemption" json:"rural_goods_exemption"`
	DutreilExemptionRate   sdecimal.Decimal        `yaml:"dutreil_exemption_rate" json:"dutreil_exemption_rate"`     // Art. 787 B, default 0.75
	MainResidenceReduction sdecimal.Decimal        `yaml:"main_residence_reduction" json:"main_residence_reduction"` // default 0.20
}

// LegalParametersMetadata documents provenance of the table, following the
// teacher's RegulatoryMetadata block.
type LegalParametersMetadata struct {
	DataYear    int    `yaml:"data_year" json:"data_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// Allowances are the per-relationship abatements applied before progressive
// brackets (Art. 779 et seq). Spouse and partner allowances are not listed:
// they receive a total exemption (Art. 796-0 bis), handled as a special case.
type Allowances struct {
	Child             decimal.Money `yaml:"child" json:"child"`
	Parent            decimal.Money `yaml:"parent" json:"parent"`
	Sibling           decimal.Money `yaml:"sibling" json:"sibling"`
	NephewNiece       decimal.Money `yaml:"nephew_niece" json:"nephew_niece"`
	Other             decimal.Money `yaml:"other" json:"other"`
	DisabledSupplement decimal.Money `yaml:"disabled_supplement" json:"disabled_supplement"`
}

// TaxBracket is one progressive-rate slice of the inheritance-tax direct-line
// and sibling scales — same shape as the teacher's TaxBracket.
type TaxBracket struct {
	Min  sdecimal.Decimal `yaml:"min" json:"min"`
	Max  sdecimal.Decimal `yaml:"max" json:"max"`
	Rate sdecimal.Decimal `yaml:"rate" json:"rate"`
}

// OtherRelationRates are the flat rates applied outside the direct-line and
// sibling brackets.
type OtherRelationRates struct {
	UpToFourthDegree sdecimal.Decimal `yaml:"up_to_fourth_degree" json:"up_to_fourth_degree"` // 55%
	Strangers        sdecimal.Decimal `yaml:"strangers" json:"strangers"`                     // 60%
}

// UsufructScaleStep is one row of the Art. 669 I age-based usufruct table.
type UsufructScaleStep struct {
	MaxAge       int              `yaml:"max_age" json:"max_age"` // -1 means "and above"
	UsufructRate sdecimal.Decimal `yaml:"usufruct_rate" json:"usufruct_rate"`
}

// LifeInsuranceParameters groups the Art. 990 I / 757 B limits.
type LifeInsuranceParameters struct {
	Article990IAllowance   decimal.Money    `yaml:"article_990_i_allowance" json:"article_990_i_allowance"`
	Article990ILowRate     sdecimal.Decimal `yaml:"article_990_i_low_rate" json:"article_990_i_low_rate"`
	Article990IHighRate    sdecimal.Decimal `yaml:"article_990_i_high_rate" json:"article_990_i_high_rate"`
	Article990IThreshold   decimal.Money    `yaml:"article_990_i_threshold" json:"article_990_i_threshold"`
	Article757BAllowance   decimal.Money    `yaml:"article_757_b_allowance" json:"article_757_b_allowance"`
	VieGenerationReduction sdecimal.Decimal `yaml:"vie_generation_reduction" json:"vie_generation_reduction"` // 0.20
}

// RuralGoodsExemption is the Art. 793 partial exemption schedule for rural
// leased land / forestry shares.
type RuralGoodsExemption struct {
	Rate        sdecimal.Decimal `yaml:"rate" json:"rate"`                 // 0.75 below threshold
	ReducedRate sdecimal.Decimal `yaml:"reduced_rate" json:"reduced_rate"` // 0.50 above threshold
	Threshold   decimal.Money    `yaml:"threshold" json:"threshold"`       // 300000
}

// DefaultLegalParameters2025 returns the 2025 legal-parameter table, the
// French-law analogue of the teacher's NewFederalTaxCalculator2025 /
// NewFICACalculator2025 hard-coded defaults. Consumers should prefer loading
// a table from file (internal/config) so a later finance law can supersede it
// without a rebuild; this constructor exists for tests and the CLI's
// zero-config path.
func DefaultLegalParameters2025() LegalParameters {
	return LegalParameters{
		Metadata: LegalParametersMetadata{
			DataYear:    2025,
			LastUpdated: "2025-01-01",
			Description: "2025 barème des droits de succession (loi de finances 2025)",
		},
		Allowances: Allowances{
			Child:              decimal.NewMoney(100000),
			Parent:             decimal.NewMoney(100000),
			Sibling:            decimal.NewMoney(15932),
			NephewNiece:        decimal.NewMoney(7967),
			Other:              decimal.NewMoney(1594),
			DisabledSupplement: decimal.NewMoney(159325),
		},
		DirectLineBrackets: []TaxBracket{
			{Min: sdecimal.NewFromInt(0), Max: sdecimal.NewFromInt(8072), Rate: sdecimal.NewFromFloat(0.05)},
			{Min: sdecimal.NewFromInt(8072), Max: sdecimal.NewFromInt(12109), Rate: sdecimal.NewFromFloat(0.10)},
			{Min: sdecimal.NewFromInt(12109), Max: sdecimal.NewFromInt(15932), Rate: sdecimal.NewFromFloat(0.15)},
			{Min: sdecimal.NewFromInt(15932), Max: sdecimal.NewFromInt(552324), Rate: sdecimal.NewFromFloat(0.20)},
			{Min: sdecimal.NewFromInt(552324), Max: sdecimal.NewFromInt(902838), Rate: sdecimal.NewFromFloat(0.30)},
			{Min: sdecimal.NewFromInt(902838), Max: sdecimal.NewFromInt(1805677), Rate: sdecimal.NewFromFloat(0.40)},
			{Min: sdecimal.NewFromInt(1805677), Max: sdecimal.NewFromInt(999999999), Rate: sdecimal.NewFromFloat(0.45)},
		},
		SiblingBrackets: []TaxBracket{
			{Min: sdecimal.NewFromInt(0), Max: sdecimal.NewFromInt(24430), Rate: sdecimal.NewFromFloat(0.35)},
			{Min: sdecimal.NewFromInt(24430), Max: sdecimal.NewFromInt(999999999), Rate: sdecimal.NewFromFloat(0.45)},
		},
		OtherRates: OtherRelationRates{
			UpToFourthDegree: sdecimal.NewFromFloat(0.55),
			Strangers:        sdecimal.NewFromFloat(0.60),
		},
		UsufructScale: []UsufructScaleStep{
			{MaxAge: 20, UsufructRate: sdecimal.NewFromFloat(0.90)},
			{MaxAge: 30, UsufructRate: sdecimal.NewFromFloat(0.80)},
			{MaxAge: 40, UsufructRate: sdecimal.NewFromFloat(0.70)},
			{MaxAge: 50, UsufructRate: sdecimal.NewFromFloat(0.60)},
			{MaxAge: 60, UsufructRate: sdecimal.NewFromFloat(0.50)},
			{MaxAge: 70, UsufructRate: sdecimal.NewFromFloat(0.40)},
			{MaxAge: 80, UsufructRate: sdecimal.NewFromFloat(0.30)},
			{MaxAge: 90, UsufructRate: sdecimal.NewFromFloat(0.20)},
			{MaxAge: -1, UsufructRate: sdecimal.NewFromFloat(0.10)},
		},
		TemporaryUsufructRate: sdecimal.NewFromFloat(0.23),
		LifeInsurance: LifeInsuranceParameters{
			Article990IAllowance:   decimal.NewMoney(152500),
			Article990ILowRate:     sdecimal.NewFromFloat(0.20),
			Article990IHighRate:    sdecimal.NewFromFloat(0.3125),
			Article990IThreshold:   decimal.NewMoney(700000),
			Article757BAllowance:   decimal.NewMoney(30500),
			VieGenerationReduction: sdecimal.NewFromFloat(0.20),
		},
		FuneralExpenseCap: decimal.NewMoney(1500),
		RightOfReturnCap:  sdecimal.NewFromFloat(0.25),
		RecallYears:       15,
		RuralGoodsExemption: RuralGoodsExemption{
			Rate:        sdecimal.NewFromFloat(0.75),
			ReducedRate: sdecimal.NewFromFloat(0.50),
			Threshold:   decimal.NewMoney(300000),
		},
		DutreilExemptionRate:   sdecimal.NewFromFloat(0.75),
		MainResidenceReduction: sdecimal.NewFromFloat(0.20),
	}
}

// UsufructRateForAge looks up the Art. 669 I viager usufruct rate for a given age.
func (lp LegalParameters) UsufructRateForAge(age int) sdecimal.Decimal {
	for _, step := range lp.UsufructScale {
		if step.MaxAge == -1 || age <= step.MaxAge {
			return step.UsufructRate
		}
	}
	if len(lp.UsufructScale) > 0 {
		return lp.UsufructScale[len(lp.UsufructScale)-1].UsufructRate
	}
	return sdecimal.Zero
}
