// Package tax supplies the rate stamped on products in the feed.
package tax

// Policy yields the tax rate for a product. Injected so regional rules
// can vary without touching the aggregation code.
type Policy interface {
	Rate() float64
}

// FixedRate is the current production policy: one flat VAT rate.
type FixedRate struct {
	rate float64
}

func NewFixedRate(rate float64) FixedRate {
	return FixedRate{rate: rate}
}

func (p FixedRate) Rate() float64 {
	return p.rate
}
