package models

// BinomialTree is the lattice strategy. It has no algorithm yet: pricing
// always fails with ErrNotImplemented and the result stays unset.
type BinomialTree struct {
	result PricingResult
}

func NewBinomialTree() *BinomialTree {
	return &BinomialTree{}
}

func (bt *BinomialTree) PriceOption(o Option) error {
	bt.result.reset()
	return ErrNotImplemented
}

func (bt *BinomialTree) Result() PricingResult { return bt.result }
func (bt *BinomialTree) Reset()                { bt.result.reset() }
func (bt *BinomialTree) Kind() StrategyKind    { return KindLattice }
func (bt *BinomialTree) isPricingStrategy()    {}
