package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/serials/cmd/app/commands"
	"github.com/allisson/serials/internal/app"
	"github.com/allisson/serials/internal/config"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getSequenceCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-sequence",
			Usage: "Create a new identifier sequence",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Unique sequence name (e.g., invoices)",
				},
				&cli.StringFlag{
					Name:    "alphabet",
					Aliases: []string{"a"},
					Value:   "numeric",
					Usage:   "Predefined alphabet (see list-alphabets)",
				},
				&cli.IntFlag{
					Name:     "length",
					Aliases:  []string{"l"},
					Required: true,
					Usage:    "Number of characters of every identifier, prefix excluded",
				},
				&cli.StringFlag{
					Name:    "exclusion",
					Aliases: []string{"e"},
					Value:   "none",
					Usage:   "Exclusion: none, first-zero or all-numeric",
				},
				&cli.StringFlag{
					Name:  "tweak",
					Usage: "Non-negative integer keying the order-obscuring permutation (omit for counter order)",
				},
				&cli.StringFlag{
					Name:  "prefix",
					Usage: "Literal prefix prepended to every identifier",
				},
				&cli.StringFlag{
					Name:  "next-value",
					Usage: "First counter value to allocate (defaults to 0)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				sequenceUseCase, err := container.SequenceUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateSequence(
					ctx,
					sequenceUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					commands.CreateSequenceParams{
						Name:      cmd.String("name"),
						Alphabet:  cmd.String("alphabet"),
						Length:    int(cmd.Int("length")),
						Exclusion: cmd.String("exclusion"),
						Tweak:     cmd.String("tweak"),
						Prefix:    cmd.String("prefix"),
						NextValue: cmd.String("next-value"),
					},
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "allocate",
			Usage: "Reserve the next identifiers of a sequence",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Sequence name",
				},
				&cli.IntFlag{
					Name:    "count",
					Aliases: []string{"c"},
					Value:   1,
					Usage:   "Number of identifiers to reserve",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				sequenceUseCase, err := container.SequenceUseCase()
				if err != nil {
					return err
				}

				return commands.RunAllocate(
					ctx,
					sequenceUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					int64(cmd.Int("count")),
					cmd.String("format"),
				)
			},
		},
	}
}
