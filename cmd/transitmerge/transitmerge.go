package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitmerge/pkg/api"
	"github.com/travigo/transitmerge/pkg/console"
	"github.com/travigo/transitmerge/pkg/stationimporter"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	if os.Getenv("TRAVIGO_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRAVIGO_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "transitmerge",
		Description: "Merges train and bus options between two places into one ranked itinerary list",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			console.RegisterPlanCLI(),
			console.RegisterTrainsCLI(),
			stationimporter.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
