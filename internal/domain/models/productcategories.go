// internal/domain/models/productcategories.go
package models

// Canonical product category labels.
//
// Categories are a closed set. The label is both the stable key stored in the
// catalog file and the text shown on the category tabs.
const (
	CategoryProtectiveMarine = "Protective & Marine"
	CategoryGeneralIndustry  = "General Industry"
	CategoryAutorefinish     = "Autorefinish"
	CategorySpecialty        = "Specialty"
)

// ProductCategories is the full set of allowed product categories, in the
// order the business lists them.
var ProductCategories = []string{
	CategoryProtectiveMarine,
	CategoryGeneralIndustry,
	CategoryAutorefinish,
	CategorySpecialty,
}

var productCategorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ProductCategories))
	for _, c := range ProductCategories {
		m[c] = struct{}{}
	}
	return m
}()

// IsValidProductCategory reports whether c is one of ProductCategories.
// The comparison is exact; labels are case sensitive.
func IsValidProductCategory(c string) bool {
	_, ok := productCategorySet[c]
	return ok
}
