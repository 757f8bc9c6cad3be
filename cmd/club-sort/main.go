package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error: ", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "club-sort",
		Usage: "Utility for assigning students to clubs by ranked choice",
		Commands: []*cli.Command{
			assignCmd,
			checkCmd,
		},
	}
}

var tableFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "specify the config file (yaml or json)",
	},
	&cli.StringFlag{
		Name:  "clubs",
		Usage: "specify the input clubs table (csv or xlsx): ClubName, Capacity",
	},
	&cli.StringFlag{
		Name:  "students",
		Usage: "specify the input student votes table (csv or xlsx): Timestamp, Email, LastName, FirstName, Grade, Choice1, Choice2, Choice3",
	},
	&cli.StringFlag{
		Name:  "clubs-sheet",
		Usage: "specify the xlsx sheet of the clubs table",
	},
	&cli.StringFlag{
		Name:  "students-sheet",
		Usage: "specify the xlsx sheet of the student votes table",
	},
	&cli.BoolFlag{
		Name:  "student-header",
		Usage: "skip the first row of the student votes table",
	},
	&cli.StringFlag{
		Name:  "log-level",
		Usage: "specify the log level (debug, info, warn, error)",
	},
}

var assignCmd = &cli.Command{
	Name:    "assign",
	Usage:   "Assign students to clubs",
	Aliases: []string{"a"},
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:  "strategy",
			Usage: "specify the allocation policy (rank-first, popularity)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "specify the report format (text, table, csv, json, yaml)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "specify the output report file, stdout if empty",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "specify a prometheus textfile for the run metrics",
		},
	}, tableFlags...),
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		return doAssign(ctx.Context, cfg, ctx.App.Writer)
	},
}

var checkCmd = &cli.Command{
	Name:  "check",
	Usage: "Load both tables and report input issues without assigning",
	Flags: tableFlags,
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		return doCheck(ctx.Context, cfg, ctx.App.Writer)
	},
}
