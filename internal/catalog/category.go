// Package catalog defines the closed set of apparel categories the pricing API
// understands.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Category is one of the eight fixed apparel classification labels.
type Category string

const (
	Top       Category = "TOP"
	Outer     Category = "OUTER"
	Pants     Category = "PANTS"
	Sneakers  Category = "SNEAKERS"
	Bag       Category = "BAG"
	Hat       Category = "HAT"
	Socks     Category = "SOCKS"
	Accessory Category = "ACCESSORY"
)

// Default is the category selected before any interaction.
const Default = Top

// ErrUnknownCategory is returned by Parse for labels outside the closed set.
var ErrUnknownCategory = errors.New("unknown category")

// all is the display order used by selectors.
var all = [...]Category{Top, Outer, Pants, Sneakers, Bag, Hat, Socks, Accessory}

var displayNames = map[Category]string{
	Top:       "상의",
	Outer:     "아우터",
	Pants:     "바지",
	Sneakers:  "스니커즈",
	Bag:       "가방",
	Hat:       "모자",
	Socks:     "양말",
	Accessory: "액세서리",
}

// All returns the categories in display order. The returned slice is a copy.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all[:])
	return out
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// DisplayName returns the Korean label the backend uses in its responses.
func (c Category) DisplayName() string {
	return displayNames[c]
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

// Index returns the position of c in All, or -1.
func (c Category) Index() int {
	for i, cat := range all {
		if cat == c {
			return i
		}
	}
	return -1
}

// Next returns the category after c, wrapping around.
// An invalid c yields Default.
func (c Category) Next() Category {
	i := c.Index()
	if i < 0 {
		return Default
	}
	return all[(i+1)%len(all)]
}

// Prev returns the category before c, wrapping around.
// An invalid c yields Default.
func (c Category) Prev() Category {
	i := c.Index()
	if i < 0 {
		return Default
	}
	return all[(i-1+len(all))%len(all)]
}

// Parse resolves s to a Category. The enum label is matched case-insensitively;
// the Korean display name is matched exactly.
func Parse(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if c := Category(strings.ToUpper(s)); c.Valid() {
		return c, nil
	}
	for c, name := range displayNames {
		if name == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
