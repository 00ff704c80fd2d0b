package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var secure = cli.Command{
	Name:  "secure",
	Usage: "encrypt the sensitive files of an exported bundle and remove the plaintext originals",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "ticker",
			Usage:    "pool ticker the bundle belongs to",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "purpose",
			Usage: "purpose of the bundle to secure",
			Value: "pledge",
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "the password used to encrypt the files",
			Required: true,
		},
	},
	Action: secureAction,
}

func secureAction(ctx *cli.Context) error {
	service, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	secured, err := service.SecureBundleFiles(
		context.Background(),
		ctx.String("ticker"), ctx.String("purpose"), ctx.String("password"),
	)
	if err != nil {
		return err
	}

	fmt.Printf("secured %d sensitive files\n", secured)
	return nil
}
