package pricing

// DefaultCommissionRate is the platform markup applied on top of a model's
// net price. Policy, overridable through configuration.
const DefaultCommissionRate = 0.15

// Calculator converts between a model's net price and the user-facing gross
// price, and splits a paid gross amount back into its net and commission
// parts. Both directions use the same rate so they stay exact inverses up to
// floating rounding.
type Calculator struct {
	rate float64
}

// NewCalculator builds a calculator for the given commission rate. A
// non-positive rate falls back to DefaultCommissionRate.
func NewCalculator(rate float64) Calculator {
	if rate <= 0 {
		rate = DefaultCommissionRate
	}
	return Calculator{rate: rate}
}

// Rate returns the commission rate in use.
func (c Calculator) Rate() float64 {
	return c.rate
}

// Gross returns the user-facing price for a model's net price.
func (c Calculator) Gross(net float64) float64 {
	return net * (1 + c.rate)
}

// Split divides a paid gross amount into the model's net share and the
// platform commission. The two parts always sum back to the gross amount.
func (c Calculator) Split(gross float64) (net, commission float64) {
	net = gross / (1 + c.rate)
	return net, gross - net
}
