package classifier

// Default returns the built-in rule table for agricultural bookkeeping.
// Deployments can override it with a YAML rules file; see Load.
func Default() Taxonomy {
	return Taxonomy{
		{
			Category: "AGRICULTURAL INPUTS",
			Keywords: []string{
				"seed", "fertilizer", "fertiliser", "agrochemical", "soil corrective",
				"herbicide", "fungicide", "insecticide", "manure", "fert",
			},
		},
		{
			Category: "MAINTENANCE AND OPERATION",
			Keywords: []string{
				"fuel", "diesel", "ethanol", "gasoline", "lubricant", "oil", "grease",
				"spare part", "bolt", "bearing", "component", "mechanic",
				"maintenance", "repair", "mechanical service",
				"tire", "tyre", "filter", "belt", "battery",
				"tool", "utensil", "protective equipment",
			},
		},
		{
			Category: "HUMAN RESOURCES",
			Keywords: []string{
				"labor", "labour", "temporary worker", "salary", "wage", "payroll", "advance payment",
			},
		},
		{
			Category: "OPERATIONAL SERVICES",
			Keywords: []string{
				"freight", "transport", "logistics",
				"harvest", "outsourced",
				"drying", "warehousing", "silo",
				"spraying", "application service",
			},
		},
		{
			Category: "INFRASTRUCTURE AND UTILITIES",
			Keywords: []string{
				"energy", "electric", "power bill",
				"land lease", "land rent",
				"construction", "renovation", "building work",
				"building material", "cement", "sand", "gravel", "hydraulic", "electrical",
			},
		},
		{
			Category: "ADMINISTRATIVE",
			Keywords: []string{
				"professional fee", "accounting", "legal service", "agronomic", "consulting",
				"bank charge", "bank fee", "interest", "financial",
			},
		},
		{
			Category: "INSURANCE AND PROTECTION",
			Keywords: []string{
				"crop insurance", "asset insurance", "machine insurance", "vehicle insurance",
				"credit life insurance", "insurance policy",
			},
		},
		{
			Category: "TAXES AND FEES",
			Keywords: []string{
				"rural land tax", "property tax", "vehicle tax", "land registry",
				"tax", "fee", "levy", "duty",
			},
		},
		{
			Category: "INVESTMENTS",
			Keywords: []string{
				"machine acquisition", "implement acquisition", "machine purchase", "tractor", "combine harvester",
				"vehicle acquisition", "vehicle purchase", "pickup truck",
				"property acquisition", "land purchase", "farm purchase",
				"rural infrastructure", "investment",
			},
		},
	}
}
