package api

import (
	"net/url"

	"codyplay/internal/catalog"
)

// Operation names one backend query the playground can trigger.
type Operation int

const (
	// OpLowestPrice fetches the lowest price per product category.
	OpLowestPrice Operation = iota
	// OpBrandSet fetches the cheapest single-brand full set.
	OpBrandSet
	// OpCategory fetches min/max prices for one category.
	OpCategory
	// OpBrands lists all brands.
	OpBrands
	// OpProducts lists all products.
	OpProducts
)

// Triggers are the operations the views expose as run controls, in display order.
var Triggers = []Operation{OpLowestPrice, OpBrandSet, OpCategory}

func (o Operation) String() string {
	switch o {
	case OpLowestPrice:
		return "lowest-price"
	case OpBrandSet:
		return "brand-set"
	case OpCategory:
		return "category"
	case OpBrands:
		return "brands"
	case OpProducts:
		return "products"
	default:
		return "unknown"
	}
}

// Title is the human-readable section heading for the operation.
func (o Operation) Title() string {
	switch o {
	case OpLowestPrice:
		return "Lowest price per category"
	case OpBrandSet:
		return "Cheapest single-brand set"
	case OpCategory:
		return "Category min / max"
	case OpBrands:
		return "Brands"
	case OpProducts:
		return "Products"
	default:
		return "Unknown"
	}
}

// TakesCategory reports whether the operation is parameterised by a Category.
func (o Operation) TakesCategory() bool {
	return o == OpCategory
}

// Path returns the request path relative to the base address.
// cat is ignored unless the operation takes a category.
func (o Operation) Path(cat catalog.Category) string {
	switch o {
	case OpLowestPrice:
		return "/products/lowest-price"
	case OpBrandSet:
		return "/brands/lowest-price"
	case OpCategory:
		return "/products/category/" + url.PathEscape(cat.String())
	case OpBrands:
		return "/brands"
	case OpProducts:
		return "/products"
	default:
		return ""
	}
}
