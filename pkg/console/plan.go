package console

import (
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/global"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/travigo/transitmerge/pkg/elastic_client"
	"github.com/urfave/cli/v2"
)

func RegisterPlanCLI() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Plan train and bus itineraries between two places",
		ArgsUsage: "<origin> <destination>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "date",
				Usage: "travel date as YYYY-MM-DD, trains not running that day are dropped",
			},
			&cli.BoolFlag{
				Name:  "no-train",
				Usage: "skip train queries",
			},
			&cli.BoolFlag{
				Name:  "no-bus",
				Usage: "skip the bus query",
			},
			&cli.IntFlag{
				Name:  "count",
				Value: dataaggregator.DefaultLimit,
				Usage: "maximum number of itineraries",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: `expression every leg must satisfy, e.g. 'mode == "BUS" && price < 900'`,
			},
			debugFlag,
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.ShowSubcommandHelp(c)
			}

			plan := query.ItineraryPlan{
				Origin:        c.Args().Get(0),
				Destination:   c.Args().Get(1),
				IncludeTrains: !c.Bool("no-train"),
				IncludeBuses:  !c.Bool("no-bus"),
				Limit:         c.Int("count"),
			}

			var err error
			if plan.Date, err = dateFlag(c); err != nil {
				return err
			}

			if c.String("filter") != "" {
				plan.FilterExpression = c.String("filter")
				if plan.Filter, err = dataaggregator.CompileFilter(plan.FilterExpression); err != nil {
					return err
				}
			}

			global.Setup(global.Connect())
			defer elastic_client.WaitUntilQueueEmpty()

			itineraries, err := dataaggregator.Lookup[[]*ctdf.AggregatedItinerary](c.Context, plan)

			return writeResult(c, itineraries, err)
		},
	}
}
