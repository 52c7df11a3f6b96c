package console

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/travigo/transitmerge/pkg/ctdf"
	"github.com/travigo/transitmerge/pkg/util"
	"github.com/urfave/cli/v2"
)

var output io.Writer = os.Stdout

// writeResult prints the {success, data} envelope for a lookup and turns a failure into a non-zero exit
func writeResult[T any](c *cli.Context, data T, err error) error {
	result := ctdf.Success(data)
	if err != nil {
		result = ctdf.FailureFromError[T](err)
	}

	if c.Bool("debug") {
		pretty.Fprintf(output, "%# v\n", result)
	} else {
		encoded, marshalErr := json.MarshalIndent(result, "", "  ")
		if marshalErr != nil {
			return marshalErr
		}
		fmt.Fprintln(output, string(encoded))
	}

	if !result.Success {
		return cli.Exit("", 1)
	}

	return nil
}

func dateFlag(c *cli.Context) (*time.Time, error) {
	if c.String("date") == "" {
		return nil, nil
	}

	date, err := util.ParseCalendarDate(c.String("date"))
	if err != nil {
		return nil, fmt.Errorf("--date should be YYYY-MM-DD: %w", err)
	}

	return &date, nil
}

var debugFlag = &cli.BoolFlag{
	Name:  "debug",
	Usage: "dump the result as Go values instead of JSON",
}
