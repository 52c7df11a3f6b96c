package stationimporter

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/database"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "Manage the station directory",
		Subcommands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "upsert stations from a code,name,city,aliases CSV file",
				ArgsUsage: "<file.csv>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return errors.New("one CSV file must be provided")
					}

					if err := database.Connect(); err != nil {
						return err
					}

					file, err := os.Open(c.Args().First())
					if err != nil {
						return err
					}
					defer file.Close()

					stations, err := ParseFile(file)
					if err != nil {
						return err
					}

					log.Info().Str("file", c.Args().First()).Int("rows", len(stations)).Msg("Parsed station file")

					return Import(c.Context, stations)
				},
			},
		},
	}
}
