package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/serials/cmd/app/commands"
	"github.com/allisson/serials/internal/app"
	"github.com/allisson/serials/internal/config"
)

func codecFlags() []cli.Flag {
	return []cli.Flag{
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
			Usage:    "Number of characters of every identifier",
		},
		&cli.StringFlag{
			Name:    "exclusion",
			Aliases: []string{"e"},
			Value:   "none",
			Usage:   "Exclusion: none, first-zero or all-numeric",
		},
		&cli.StringFlag{
			Name:  "tweak",
			Usage: "Non-negative integer keying the permutation (omit for counter order)",
		},
		formatFlag(),
	}
}

func codecParams(cmd *cli.Command) commands.CodecParams {
	return commands.CodecParams{
		Alphabet:  cmd.String("alphabet"),
		Length:    int(cmd.Int("length")),
		Exclusion: cmd.String("exclusion"),
		Tweak:     cmd.String("tweak"),
	}
}

func getCodecCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "encode",
			Usage:     "Render values as identifiers without touching the database",
			ArgsUsage: "<value> [value...]",
			Flags:     codecFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				return commands.RunEncode(
					container.CodecFactory(),
					commands.DefaultIO().Writer,
					codecParams(cmd),
					cmd.Args().Slice(),
					cmd.String("format"),
				)
			},
		},
		{
			Name:      "decode",
			Usage:     "Recover the values behind identifiers without touching the database",
			ArgsUsage: "<identifier> [identifier...]",
			Flags:     codecFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				return commands.RunDecode(
					container.CodecFactory(),
					commands.DefaultIO().Writer,
					codecParams(cmd),
					cmd.Args().Slice(),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-alphabets",
			Usage: "List the predefined alphabets and their exclusions",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunListAlphabets(commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
	}
}
