package factors

// Built-in fallback factors keep the engine demonstrable when the
// external factor store is unreachable. The table is intentionally
// incomplete: it covers common fuel, electricity, and value-chain
// categories only, and a miss here is a real miss — it must never
// silently mask data the store would not have had either.
//
// Factor values are kg CO2e per the listed unit.
var builtinFactors = map[Key]EmissionFactor{
	// Scope 1 — stationary combustion fuels.
	{"fuel", "natural_gas_commercial", 1, "US"}: {
		Category: "fuel", Subcategory: "natural_gas_commercial", Scope: 1,
		Factor: 53.06, Unit: "MMBtu", Source: "EPA 2023",
		Provenance: ProvenanceGovernmentStandard, Region: "US", Year: 2023,
	},
	{"fuel", "natural_gas_commercial", 1, GlobalRegion}: {
		Category: "fuel", Subcategory: "natural_gas_commercial", Scope: 1,
		Factor: 56.1, Unit: "MMBtu", Source: "IPCC 2006",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2006,
	},
	{"fuel", "diesel", 1, GlobalRegion}: {
		Category: "fuel", Subcategory: "diesel", Scope: 1,
		Factor: 10.21, Unit: "gallon", Source: "EPA 2023",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2023,
	},
	{"fuel", "propane", 1, GlobalRegion}: {
		Category: "fuel", Subcategory: "propane", Scope: 1,
		Factor: 5.76, Unit: "gallon", Source: "EPA 2023",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2023,
	},
	{"fuel", "fuel_oil", 1, GlobalRegion}: {
		Category: "fuel", Subcategory: "fuel_oil", Scope: 1,
		Factor: 10.16, Unit: "gallon", Source: "EPA 2023",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2023,
	},

	// Scope 1 — mobile combustion.
	{"transport", "gasoline", 1, GlobalRegion}: {
		Category: "transport", Subcategory: "gasoline", Scope: 1,
		Factor: 8.78, Unit: "gallon", Source: "EPA 2023",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2023,
	},
	{"transport", "diesel", 1, GlobalRegion}: {
		Category: "transport", Subcategory: "diesel", Scope: 1,
		Factor: 10.21, Unit: "gallon", Source: "EPA 2023",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2023,
	},

	// Scope 2 — grid electricity. Grid identity is encoded in the
	// subcategory, so these rows are region-agnostic.
	{"electricity", "grid_us_national", 2, GlobalRegion}: {
		Category: "electricity", Subcategory: "grid_us_national", Scope: 2,
		Factor: 0.386, Unit: "kWh", Source: "EPA eGRID 2022",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2022,
	},
	{"electricity", "grid_uk", 2, GlobalRegion}: {
		Category: "electricity", Subcategory: "grid_uk", Scope: 2,
		Factor: 0.193, Unit: "kWh", Source: "DEFRA 2023",
		Provenance: ProvenanceIndustryStandard, Region: GlobalRegion, Year: 2023,
	},
	{"electricity", "grid_germany", 2, GlobalRegion}: {
		Category: "electricity", Subcategory: "grid_germany", Scope: 2,
		Factor: 0.366, Unit: "kWh", Source: "UBA 2023",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2023,
	},
	{"electricity", "grid_france", 2, GlobalRegion}: {
		Category: "electricity", Subcategory: "grid_france", Scope: 2,
		Factor: 0.052, Unit: "kWh", Source: "ADEME 2023",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2023,
	},
	{"electricity", "grid_china", 2, GlobalRegion}: {
		Category: "electricity", Subcategory: "grid_china", Scope: 2,
		Factor: 0.581, Unit: "kWh", Source: "IEA 2023",
		Provenance: ProvenanceIndustryStandard, Region: GlobalRegion, Year: 2023,
	},
	{"electricity", "grid_india", 2, GlobalRegion}: {
		Category: "electricity", Subcategory: "grid_india", Scope: 2,
		Factor: 0.713, Unit: "kWh", Source: "IEA 2023",
		Provenance: ProvenanceIndustryStandard, Region: GlobalRegion, Year: 2023,
	},

	// Scope 3 — activity-based value-chain factors.
	{"business_travel", "air_travel", 3, GlobalRegion}: {
		Category: "business_travel", Subcategory: "air_travel", Scope: 3,
		Factor: 0.115, Unit: "passenger-km", Source: "DEFRA 2023",
		Provenance: ProvenanceIndustryStandard, Region: GlobalRegion, Year: 2023,
	},
	{"business_travel", "rail_travel", 3, GlobalRegion}: {
		Category: "business_travel", Subcategory: "rail_travel", Scope: 3,
		Factor: 0.035, Unit: "passenger-km", Source: "DEFRA 2023",
		Provenance: ProvenanceIndustryStandard, Region: GlobalRegion, Year: 2023,
	},
	{"employee_commuting", "commuting", 3, GlobalRegion}: {
		Category: "employee_commuting", Subcategory: "commuting", Scope: 3,
		Factor: 0.17, Unit: "passenger-km", Source: "DEFRA 2023",
		Provenance: ProvenanceIndustryStandard, Region: GlobalRegion, Year: 2023,
	},
	{"freight", "upstream_transport", 3, GlobalRegion}: {
		Category: "freight", Subcategory: "upstream_transport", Scope: 3,
		Factor: 0.105, Unit: "tonne-km", Source: "DEFRA 2023",
		Provenance: ProvenanceIndustryStandard, Region: GlobalRegion, Year: 2023,
	},
	{"freight", "downstream_transport", 3, GlobalRegion}: {
		Category: "freight", Subcategory: "downstream_transport", Scope: 3,
		Factor: 0.105, Unit: "tonne-km", Source: "DEFRA 2023",
		Provenance: ProvenanceIndustryStandard, Region: GlobalRegion, Year: 2023,
	},
	{"waste", "waste_generated", 3, GlobalRegion}: {
		Category: "waste", Subcategory: "waste_generated", Scope: 3,
		Factor: 467.0, Unit: "tonne", Source: "EPA WARM 2023",
		Provenance: ProvenanceGovernmentStandard, Region: GlobalRegion, Year: 2023,
	},

	// Scope 3 — spend-based factors (kg CO2e per USD).
	{"spend_based", "goods_and_services", 3, GlobalRegion}: {
		Category: "spend_based", Subcategory: "goods_and_services", Scope: 3,
		Factor: 0.48, Unit: "USD", Source: "EEIO estimate",
		Provenance: ProvenanceEstimated, Region: GlobalRegion, Year: 2022,
	},
	{"spend_based", "capital_goods", 3, GlobalRegion}: {
		Category: "spend_based", Subcategory: "capital_goods", Scope: 3,
		Factor: 0.39, Unit: "USD", Source: "EEIO estimate",
		Provenance: ProvenanceEstimated, Region: GlobalRegion, Year: 2022,
	},
	{"spend_based", "investments", 3, GlobalRegion}: {
		Category: "spend_based", Subcategory: "investments", Scope: 3,
		Factor: 0.21, Unit: "USD", Source: "EEIO estimate",
		Provenance: ProvenanceEstimated, Region: GlobalRegion, Year: 2022,
	},
}

// lookupBuiltin resolves against the built-in table, preferring a
// region-specific row over the GLOBAL row.
func lookupBuiltin(category, subcategory string, scope int, region string) (EmissionFactor, bool) {
	if region != "" && region != GlobalRegion {
		if f, ok := builtinFactors[Key{category, subcategory, scope, region}]; ok {
			return f, true
		}
	}
	f, ok := builtinFactors[Key{category, subcategory, scope, GlobalRegion}]
	return f, ok
}
