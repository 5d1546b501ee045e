package pricing

import (
	"errors"
	"fmt"
)

var (
	ErrNotForSale      = errors.New("package is not for sale")
	ErrInvalidQuantity = errors.New("invalid purchase quantity")
)

// MaxQuantity caps a single purchase.
const MaxQuantity = 100

// Price is the gold cost of one package, plus an optional bundle price for ten.
type Price struct {
	Gold   int64 `yaml:"gold" json:"gold" validate:"gte=0"`
	PerTen int64 `yaml:"perTen,omitempty" json:"perTen,omitempty" validate:"gte=0"`
}

// CostFor returns how much gold n packages cost.
// With PerTen set, each full ten is billed at PerTen and the remainder at Gold.
func (p Price) CostFor(n int) int64 {
	if n <= 0 {
		return 0
	}
	if p.PerTen > 0 && n >= 10 {
		tens := int64(n / 10)
		rem := int64(n % 10)
		return tens*p.PerTen + rem*p.Gold
	}
	return int64(n) * p.Gold
}

// Catalog maps package ids to prices.
type Catalog map[string]Price

// Quote is one priced line item.
type Quote struct {
	PackageID string `json:"packageId"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
	Saved     int64  `json:"saved,omitempty"` // discount from bundle pricing
}

// Quote prices qty units of a package.
func (c Catalog) Quote(packageID string, qty int) (Quote, error) {
	if qty < 1 || qty > MaxQuantity {
		return Quote{}, fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidQuantity, qty, MaxQuantity)
	}
	p, ok := c[packageID]
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", ErrNotForSale, packageID)
	}
	total := p.CostFor(qty)
	return Quote{
		PackageID: packageID,
		Qty:       qty,
		UnitPrice: p.Gold,
		Total:     total,
		Saved:     int64(qty)*p.Gold - total,
	}, nil
}
