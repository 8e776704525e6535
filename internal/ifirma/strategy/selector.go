package strategy

import (
	"github.com/jonboulle/clockwork"

	"github.com/djweb/payments/internal/model"
)

// Selector dispatches invoice requests to the first matching strategy.
// Priority is the explicit slice order; the five built-ins are
// exhaustive and mutually exclusive over valid input, so exhaustion is
// only reachable with a broken custom strategy set.
type Selector struct {
	strategies []Strategy
}

// NewSelector creates a selector with the built-in strategies in their
// fixed priority order. The currency regime is checked first so that
// domestic customers paying in a foreign currency do not fall through
// to the plain domestic regime.
func NewSelector(clock clockwork.Clock) *Selector {
	return &Selector{
		strategies: []Strategy{
			NewCurrency(clock),
			NewDomestic(clock),
			NewEUB2B(clock),
			NewOSS(clock),
			NewExport(clock),
		},
	}
}

// Select returns the first strategy whose predicate matches the request
func (s *Selector) Select(req model.InvoiceRequest) (Strategy, error) {
	for _, strat := range s.strategies {
		if strat.Supports(req) {
			return strat, nil
		}
	}
	return nil, model.NewNoStrategyError(req.Customer.Address.Country.Code())
}

// Register inserts a custom strategy at the front of the list, giving
// it priority over the built-ins even when predicates overlap
func (s *Selector) Register(strat Strategy) {
	s.strategies = append([]Strategy{strat}, s.strategies...)
}

// Strategies returns a copy of the current priority order
func (s *Selector) Strategies() []Strategy {
	out := make([]Strategy, len(s.strategies))
	copy(out, s.strategies)
	return out
}
