// internal/domain/catalog/pricing.go
package catalog

// ResolveUnitPrice computes the effective unit price of a product given its
// base price and the shopper's variant selection. Every selected (type, value)
// pair that matches a declared variant option adds that option's additional
// price. Selections naming a type or value the product does not declare are
// ignored rather than rejected, matching the storefront's lenient behavior.
func ResolveUnitPrice(basePrice int64, groups []VariantGroup, selected map[string]string) int64 {
	price := basePrice

	for _, group := range groups {
		value, ok := selected[group.Name]
		if !ok {
			continue
		}
		for _, option := range group.Options {
			if option.Value == value {
				price += option.AdditionalPrice
				break
			}
		}
	}

	return price
}
