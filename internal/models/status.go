package models

import "strings"

// ComputeStatus derives product completeness from the family's attribute
// links and the product's current values. Complete iff the product has a
// family and every required family attribute has a non-empty value. Custom
// (non-family) attributes never affect status; a product without a family is
// always incomplete.
func ComputeStatus(familyAttributes []*FamilyAttribute, values []*ProductAttribute) string {
	if familyAttributes == nil {
		return ProductStatusIncomplete
	}

	byAttribute := make(map[string]string, len(values))
	for _, v := range values {
		byAttribute[v.AttributeID.String()] = v.Value
	}

	for _, link := range familyAttributes {
		if !link.IsRequired {
			continue
		}
		if strings.TrimSpace(byAttribute[link.AttributeID.String()]) == "" {
			return ProductStatusIncomplete
		}
	}
	return ProductStatusComplete
}
