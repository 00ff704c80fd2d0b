package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var view = cli.Command{
	Name:  "view",
	Usage: "list or decrypt the secured files of a bundle in memory",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "ticker",
			Usage:    "pool ticker the bundle belongs to",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "purpose",
			Usage: "purpose of the bundle to inspect",
			Value: "pledge",
		},
		&cli.StringFlag{
			Name:  "password",
			Usage: "the password the files were encrypted with",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "name of the secured file to decrypt; omit to list them",
		},
	},
	Action: viewAction,
}

func viewAction(ctx *cli.Context) error {
	service, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	ticker, purpose := ctx.String("ticker"), ctx.String("purpose")

	name := ctx.String("file")
	if len(name) <= 0 {
		names, err := service.ListSecuredFiles(context.Background(), ticker, purpose)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	plain, err := service.ViewSecuredFile(
		context.Background(), ticker, purpose, ctx.String("password"), name,
	)
	if err != nil {
		return err
	}

	fmt.Println(string(plain))
	return nil
}
