package loan

import "testing"

func TestCatalogResolve(t *testing.T) {
	catalog := NewCatalog()

	t.Run("known_types", func(t *testing.T) {
		home := catalog.Resolve(TypeHome)
		if home.MinAnnualIncome != 600000 {
			t.Errorf("expected home minimum income 600000, got %v", home.MinAnnualIncome)
		}
		if home.MaxAgeAtMaturity != 70 {
			t.Errorf("expected home maturity cap 70, got %d", home.MaxAgeAtMaturity)
		}

		business := catalog.Resolve(TypeBusiness)
		if business.MinAge != 25 {
			t.Errorf("expected business minimum age 25, got %d", business.MinAge)
		}
		if business.MinEmploymentYears != 3 {
			t.Errorf("expected business minimum employment years 3, got %v", business.MinEmploymentYears)
		}
	})

	t.Run("education_has_zero_dti_cap", func(t *testing.T) {
		education := catalog.Resolve(TypeEducation)
		if education.MaxDTIRatio != 0 {
			t.Errorf("expected education DTI cap 0, got %v", education.MaxDTIRatio)
		}
		if education.MinAnnualIncome != 0 {
			t.Errorf("expected education minimum income 0, got %v", education.MinAnnualIncome)
		}
	})

	t.Run("unknown_type_falls_back_to_personal", func(t *testing.T) {
		personal := catalog.Resolve(TypePersonal)
		unknown := catalog.Resolve(Type("crypto"))
		if unknown != personal {
			t.Errorf("expected personal criteria for unknown type, got %+v", unknown)
		}
	})
}

func TestCatalogTypes(t *testing.T) {
	types := NewCatalog().Types()
	if len(types) != 5 {
		t.Fatalf("expected 5 loan types, got %d", len(types))
	}
	seen := make(map[Type]bool, len(types))
	for _, lt := range types {
		seen[lt] = true
	}
	for _, want := range []Type{TypePersonal, TypeHome, TypeCar, TypeEducation, TypeBusiness} {
		if !seen[want] {
			t.Errorf("expected %s in catalog types", want)
		}
	}
}
