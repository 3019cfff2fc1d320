package loan

// Criteria holds the eligibility thresholds for one loan type.
type Criteria struct {
	MinAge             int
	MaxAgeAtMaturity   int
	MinAnnualIncome    float64
	MinEmploymentYears float64
	MinCreditScore     int
	MaxDTIRatio        float64 // percent
	MinInterestRate    float64 // percent
	MaxLoanToIncome    float64 // multiple of annual income
}

// Catalog is an immutable mapping from loan type to its criteria. Build it
// once at startup and never mutate it; threshold changes mean constructing
// a replacement catalog, not patching entries at runtime.
type Catalog struct {
	entries map[Type]Criteria
}

// NewCatalog returns the standard criteria catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: map[Type]Criteria{
		TypePersonal: {
			MinAge:             21,
			MaxAgeAtMaturity:   65,
			MinAnnualIncome:    300000,
			MinEmploymentYears: 1,
			MinCreditScore:     650,
			MaxDTIRatio:        40,
			MinInterestRate:    10.5,
			MaxLoanToIncome:    5,
		},
		TypeHome: {
			MinAge:             21,
			MaxAgeAtMaturity:   70,
			MinAnnualIncome:    600000,
			MinEmploymentYears: 2,
			MinCreditScore:     700,
			MaxDTIRatio:        35,
			MinInterestRate:    8.5,
			MaxLoanToIncome:    6,
		},
		TypeCar: {
			MinAge:             21,
			MaxAgeAtMaturity:   65,
			MinAnnualIncome:    400000,
			MinEmploymentYears: 1,
			MinCreditScore:     600,
			MaxDTIRatio:        45,
			MinInterestRate:    7.5,
			MaxLoanToIncome:    5,
		},
		TypeEducation: {
			MinAge:             18,
			MaxAgeAtMaturity:   35,
			MinAnnualIncome:    0,
			MinEmploymentYears: 0,
			MinCreditScore:     550,
			// A zero DTI maximum fails for any positive DTI, which the
			// candidate installment alone guarantees. Preserved as-is
			// pending product-owner review of the criteria data.
			MaxDTIRatio:     0,
			MinInterestRate: 8.0,
			MaxLoanToIncome: 10, // higher for education
		},
		TypeBusiness: {
			MinAge:             25,
			MaxAgeAtMaturity:   65,
			MinAnnualIncome:    800000,
			MinEmploymentYears: 3,
			MinCreditScore:     720,
			MaxDTIRatio:        30,
			MinInterestRate:    11.0,
			MaxLoanToIncome:    4,
		},
	}}
}

// Resolve returns the criteria for the given loan type. Unknown types
// resolve to the personal-loan entry; the fallback is deliberate policy,
// not an error.
func (c *Catalog) Resolve(t Type) Criteria {
	if entry, ok := c.entries[t]; ok {
		return entry
	}
	return c.entries[TypePersonal]
}

// Types returns the loan types the catalog has entries for.
func (c *Catalog) Types() []Type {
	types := make([]Type, 0, len(c.entries))
	for t := range c.entries {
		types = append(types, t)
	}
	return types
}
