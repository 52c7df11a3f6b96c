package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/dataaggregator/global"
	"github.com/travigo/transitmerge/pkg/elastic_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the itinerary web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					global.Setup(global.Connect())
					defer elastic_client.WaitUntilQueueEmpty()

					log.Info().Str("listen", c.String("listen")).Msg("Starting web API")

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
