package dataaggregator

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/ctdf"
)

// FilterEnv is what a leg filter expression can see, e.g. `mode == "BUS" && hasPrice && price < 900`
type FilterEnv struct {
	Mode        string  `expr:"mode"`
	Identifier  string  `expr:"identifier"`
	Name        string  `expr:"name"`
	Origin      string  `expr:"origin"`
	Destination string  `expr:"destination"`
	Departure   string  `expr:"departure"`
	Arrival     string  `expr:"arrival"`
	Duration    int     `expr:"duration"`
	KnownTime   bool    `expr:"knownDuration"`
	Operator    string  `expr:"operator"`
	HasPrice    bool    `expr:"hasPrice"`
	Price       float64 `expr:"price"`
	Discounted  bool    `expr:"discounted"`
	AC          bool    `expr:"ac"`
	Sleeper     bool    `expr:"sleeper"`
	Seater      bool    `expr:"seater"`
	Seats       int     `expr:"seats"`
}

func CompileFilter(expression string) (*vm.Program, error) {
	return expr.Compile(expression, expr.Env(FilterEnv{}), expr.AsBool())
}

func NewFilterEnv(leg *ctdf.TransitLeg) FilterEnv {
	env := FilterEnv{
		Mode:        string(leg.Mode),
		Identifier:  leg.Identifier,
		Name:        leg.DisplayName,
		Origin:      leg.OriginCode,
		Destination: leg.DestinationCode,
		Departure:   leg.DepartureTime,
		Arrival:     leg.ArrivalTime,
		Duration:    leg.DurationMinutes,
		KnownTime:   leg.HasKnownDuration(),
		Operator:    leg.Operator,
		Discounted:  leg.IsDiscounted(),
	}

	if leg.Price != nil {
		env.HasPrice = true
		env.Price = *leg.Price
	}
	if leg.Features != nil {
		env.AC = leg.Features.AC
		env.Sleeper = leg.Features.Sleeper
		env.Seater = leg.Features.Seater
	}
	if leg.SeatsAvailable != nil {
		env.Seats = *leg.SeatsAvailable
	}

	return env
}

// MatchesFilter evaluates program against leg, a runtime error drops the leg
func MatchesFilter(program *vm.Program, leg *ctdf.TransitLeg) bool {
	output, err := expr.Run(program, NewFilterEnv(leg))
	if err != nil {
		log.Debug().Err(err).Str("identifier", leg.Identifier).Msg("Filter expression failed on leg")
		return false
	}

	matched, ok := output.(bool)

	return ok && matched
}
