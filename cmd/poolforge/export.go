package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var export = cli.Command{
	Name:  "export",
	Usage: "pack an exported bundle into one password-protected archive for backup or transfer",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "ticker",
			Usage:    "pool ticker the bundle belongs to",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "purpose",
			Usage: "purpose of the bundle to archive",
			Value: "pledge",
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "the password used to encrypt the archive",
			Required: true,
		},
	},
	Action: exportAction,
}

func exportAction(ctx *cli.Context) error {
	service, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	archive, err := service.ExportBundleArchive(
		context.Background(),
		ctx.String("ticker"), ctx.String("purpose"), ctx.String("password"),
	)
	if err != nil {
		return err
	}

	fmt.Printf("encrypted archive written to %s\n", archive)
	return nil
}
