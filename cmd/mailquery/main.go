// Command mailquery compiles s-expression mail queries from the
// command line, the thin CLI front end over internal/query.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/sourcegraph/mailquery/internal/backend"
	"github.com/sourcegraph/mailquery/internal/query"
	"github.com/sourcegraph/mailquery/internal/squery"
)

var dsn string

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var app = &cli.App{
	Name:  "mailquery",
	Usage: "compile s-expression mail queries into a backend query tree",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "db",
			Usage:       "path to the sqlite configuration database",
			EnvVars:     []string{"MAILQUERY_DB"},
			Value:       "mailquery.db",
			Destination: &dsn,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log sqlite queries made against the configuration database",
		},
	},
	Before: func(c *cli.Context) error {
		_ = godotenv.Load()
		// Flag values were taken from the environment before Before
		// runs, so a MAILQUERY_DB supplied only by .env is applied here.
		if !c.IsSet("db") {
			if v := os.Getenv("MAILQUERY_DB"); v != "" {
				dsn = v
			}
		}
		return nil
	},
	Commands: []*cli.Command{
		compileCommand,
		squeryCommand,
	},
}

var compileCommand = &cli.Command{
	Name:      "compile",
	Usage:     "compile an s-expression query and print its query tree",
	ArgsUsage: "<query>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("expected exactly one query argument", 1)
		}

		store, err := squery.Connect(dsn, c.Bool("debug"))
		if err != nil {
			return err
		}
		defer store.Close()

		tree, err := query.Compile(backend.New(store), c.Args().First())
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		fmt.Println(tree.String())
		return nil
	},
}

var squeryCommand = &cli.Command{
	Name:  "squery",
	Usage: "manage saved squeries and user-defined header prefixes",
	Subcommands: []*cli.Command{
		{
			Name:      "save",
			Usage:     "save a named s-expression query",
			ArgsUsage: "<name> <query>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 2 {
					return cli.Exit("expected exactly two arguments: name and query", 1)
				}
				store, err := squery.Connect(dsn, c.Bool("debug"))
				if err != nil {
					return err
				}
				defer store.Close()
				return store.ConfigSet("squery."+c.Args().Get(0), c.Args().Get(1))
			},
		},
		{
			Name:      "register-header",
			Usage:     "register a user-defined header prefix",
			ArgsUsage: "<name>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return cli.Exit("expected exactly one argument: name", 1)
				}
				store, err := squery.Connect(dsn, c.Bool("debug"))
				if err != nil {
					return err
				}
				defer store.Close()
				return store.RegisterUserPrefix(c.Args().Get(0))
			},
		},
	},
}
