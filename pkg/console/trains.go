package console

import (
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/dataaggregator"
	"github.com/travigo/transitmerge/pkg/dataaggregator/global"
	"github.com/travigo/transitmerge/pkg/dataaggregator/query"
	"github.com/urfave/cli/v2"
)

func RegisterTrainsCLI() *cli.Command {
	return &cli.Command{
		Name:  "trains",
		Usage: "Query the rail provider directly",
		Before: func(c *cli.Context) error {
			global.Setup(global.Options{})
			return nil
		},
		Subcommands: []*cli.Command{
			{
				Name:      "between",
				Usage:     "list direct trains between two station codes",
				ArgsUsage: "<from> <to>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "only trains running on this YYYY-MM-DD date",
					},
					debugFlag,
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return cli.ShowSubcommandHelp(c)
					}

					date, err := dateFlag(c)
					if err != nil {
						return err
					}

					legs, err := dataaggregator.Lookup[[]*ctdf.TransitLeg](c.Context, query.TrainsBetweenStations{
						FromStationCode: c.Args().Get(0),
						ToStationCode:   c.Args().Get(1),
						Date:            date,
					})

					return writeResult(c, legs, err)
				},
			},
			{
				Name:      "lookup",
				Usage:     "look a train up by number",
				ArgsUsage: "<number>",
				Flags:     []cli.Flag{debugFlag},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.ShowSubcommandHelp(c)
					}

					identity, err := dataaggregator.Lookup[*ctdf.TrainIdentity](c.Context, query.TrainLookup{
						TrainNumber: c.Args().First(),
					})

					return writeResult(c, identity, err)
				},
			},
			{
				Name:      "route",
				Usage:     "list the stops of a train",
				ArgsUsage: "<number>",
				Flags:     []cli.Flag{debugFlag},
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.ShowSubcommandHelp(c)
					}

					stops, err := dataaggregator.Lookup[[]*ctdf.RouteStop](c.Context, query.TrainRoute{
						TrainNumber: c.Args().First(),
					})

					return writeResult(c, stops, err)
				},
			},
		},
	}
}
