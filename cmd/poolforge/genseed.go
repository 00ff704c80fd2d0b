package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var genseed = cli.Command{
	Name:   "seed",
	Usage:  "generate a recovery phrase without persisting it",
	Action: genSeedAction,
}

func genSeedAction(ctx *cli.Context) error {
	service, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	words, err := service.GenSeed(context.Background())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(strings.Join(words, " "))

	return nil
}
