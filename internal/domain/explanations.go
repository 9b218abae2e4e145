package domain

// ExplanationKey is a stable identifier citing the legal article behind a
// computed figure (I7). Keeping these as typed constants, rather than bare
// strings scattered across the calculation package, turns a typo into a
// compile error instead of a silent trace gap.
type ExplanationKey string

const (
	// Matrimonial liquidation (C3)
	KeyLiquidationSeparationPersonal   ExplanationKey = "LIQUIDATION_SEPARATION_PERSONAL"
	KeyLiquidationCommunityPropre      ExplanationKey = "LIQUIDATION_COMMUNITY_PROPRE"
	KeyLiquidationCommunity50          ExplanationKey = "LIQUIDATION_COMMUNITY_50"
	KeyLiquidationReward               ExplanationKey = "LIQUIDATION_REWARD_ART_1468"
	KeyLiquidationFullAttribution      ExplanationKey = "LIQUIDATION_FULL_ATTRIBUTION"
	KeyLiquidationPreciput             ExplanationKey = "LIQUIDATION_PRECIPUT"
	KeyLiquidationUnequalShare         ExplanationKey = "LIQUIDATION_UNEQUAL_SHARE"
	KeyAlertSeparationCommunityAsset   ExplanationKey = "ALERT_SEPARATION_COMMUNITY_ASSET"
	KeyAlertRetranchement              ExplanationKey = "ALERT_RETRANCHEMENT_ART_1527"
	KeyAlertRewardPayerUnknown         ExplanationKey = "ALERT_REWARD_PAYER_UNKNOWN"

	// Estate reconstitution (C4)
	KeyReconstitutionDonationReported  ExplanationKey = "RECONSTITUTION_DONATION_REPORTED"
	KeyReconstitutionDebtDeducted      ExplanationKey = "RECONSTITUTION_DEBT_DEDUCTED"
	KeyReconstitutionDebtProrated      ExplanationKey = "RECONSTITUTION_DEBT_PRORATED_ART_769"
	KeyAlertFuneralCapExceeded         ExplanationKey = "ALERT_FUNERAL_CAP_EXCEEDED"
	KeyRightOfReturn                  ExplanationKey = "RIGHT_OF_RETURN_ART_738_2"

	// Devolution (C5)
	KeyDevolutionOrder1Descendants     ExplanationKey = "DEVOLUTION_ORDER_1_DESCENDANTS"
	KeyDevolutionOrder2SpouseParents   ExplanationKey = "DEVOLUTION_ORDER_2_SPOUSE_PARENTS"
	KeyDevolutionOrder3Siblings        ExplanationKey = "DEVOLUTION_ORDER_3_SIBLINGS"
	KeyDevolutionOrder4Ascendants      ExplanationKey = "DEVOLUTION_ORDER_4_ASCENDANTS"
	KeyDevolutionCleft                ExplanationKey = "DEVOLUTION_CLEFT_ART_746"
	KeyReserveComputed                ExplanationKey = "RESERVE_COMPUTED_ART_913"
	KeyReserveAscendants              ExplanationKey = "RESERVE_ASCENDANTS_ART_914_1"
	KeyShareRepresentation            ExplanationKey = "SHARE_REPRESENTATION"
	KeyAlertEmptyPaternalLine         ExplanationKey = "ALERT_EMPTY_PATERNAL_LINE_FLAG_MISSING"

	// Share allocation (C6)
	KeyShareChildrenEqual             ExplanationKey = "SHARE_CHILDREN_EQUAL"
	KeyShareCustom                    ExplanationKey = "SHARE_CUSTOM"
	KeyShareSpecificBequest           ExplanationKey = "SHARE_SPECIFIC_BEQUEST"
	KeySpouseUsufruct                 ExplanationKey = "SPOUSE_OPTION_USUFRUCT_ART_757"
	KeySpouseQuarterOwnership         ExplanationKey = "SPOUSE_OPTION_QUARTER_OWNERSHIP"
	KeySpouseDisposableQuota          ExplanationKey = "SPOUSE_OPTION_DISPOSABLE_QUOTA"
	KeySpouseAloneNoDescendants       ExplanationKey = "SPOUSE_ALONE_NO_DESCENDANTS"
	KeySpouseAndParents               ExplanationKey = "SPOUSE_AND_PARENTS_ART_757"
	KeyGiftImputation                 ExplanationKey = "GIFT_IMPUTATION_ART_843"
	KeyAlertOverAllocation            ExplanationKey = "ALERT_OVER_ALLOCATION"
	KeyAlertReserveExceeded           ExplanationKey = "ALERT_RESERVE_EXCEEDED"
	KeyReductionBequest               ExplanationKey = "REDUCTION_BEQUEST_ART_920"
	KeyReductionDonation               ExplanationKey = "REDUCTION_DONATION_ART_920"

	// Usufruct valuation (C7)
	KeyUsufructViagerScale             ExplanationKey = "USUFRUCT_VIAGER_SCALE_ART_669_I"
	KeyUsufructTemporaire               ExplanationKey = "USUFRUCT_TEMPORAIRE_ART_669_II"

	// Inheritance tax (C8)
	KeyAbatementChild100k               ExplanationKey = "ABATEMENT_CHILD_100K"
	KeyAbatementSibling                 ExplanationKey = "ABATEMENT_SIBLING_15932"
	KeyAbatementNephewNiece              ExplanationKey = "ABATEMENT_NEPHEW_NIECE_7967"
	KeyAbatementOther                    ExplanationKey = "ABATEMENT_OTHER_1594"
	KeyAbatementDisabled                 ExplanationKey = "ABATEMENT_DISABLED_SUPPLEMENT"
	KeyAbatementConsumed15y              ExplanationKey = "ABATEMENT_CONSUMED_15Y"
	KeyTaxSpouseExempt                   ExplanationKey = "TAX_SPOUSE_EXEMPT"
	KeyTaxDirectLineBrackets             ExplanationKey = "TAX_DIRECT_LINE_BRACKETS_ART_777"
	KeyTaxSiblingRate                    ExplanationKey = "TAX_SIBLING_RATE_35_45"
	KeyTaxOtherRate55                    ExplanationKey = "TAX_OTHER_RATE_55"
	KeyTaxStrangerRate60                 ExplanationKey = "TAX_STRANGER_RATE_60"
	KeyTaxAdoptionFull                   ExplanationKey = "TAX_ADOPTION_FULL_CHILD_BRACKETS"
	KeyTaxAdoptionSimpleContinuousCare   ExplanationKey = "TAX_ADOPTION_SIMPLE_CONTINUOUS_CARE"
	KeyLegalFlagAdoptionSimpleNoCare     ExplanationKey = "LEGAL_FLAG_ADOPTION_SIMPLE_NO_CARE"
	KeyExemptionDutreil                  ExplanationKey = "EXEMPTION_DUTREIL_ART_787_B"
	KeyExemptionRuralGoods               ExplanationKey = "EXEMPTION_RURAL_GOODS_ART_793"
	KeyExemptionMainResidence            ExplanationKey = "EXEMPTION_MAIN_RESIDENCE_20"

	// Life-insurance tax (C9)
	KeyLifeInsuranceAncienExempt         ExplanationKey = "LIFE_INSURANCE_ANCIEN_EXEMPT"
	KeyLifeInsuranceVieGeneration        ExplanationKey = "LIFE_INSURANCE_VIE_GENERATION_REDUCTION"
	KeyLifeInsuranceArt990I              ExplanationKey = "LIFE_INSURANCE_ART_990_I"
	KeyLifeInsuranceArt990ISpouseExempt  ExplanationKey = "LIFE_INSURANCE_ART_990_I_SPOUSE_EXEMPT"
	KeyLifeInsuranceArt757B              ExplanationKey = "LIFE_INSURANCE_ART_757_B"
	KeyLifeInsuranceDismembered          ExplanationKey = "LIFE_INSURANCE_DISMEMBERED_BENEFICIARY"

	// Cross-cutting / general
	KeyAlertInternational               ExplanationKey = "ALERT_INTERNATIONAL"
	KeyInvariantViolation                ExplanationKey = "INTERNAL_INVARIANT_VIOLATION"
)
