package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/poolforge/poolforge/config"
	"github.com/poolforge/poolforge/internal/core/application"
	"github.com/poolforge/poolforge/internal/core/domain"
)

var importwallet = cli.Command{
	Name:  "import",
	Usage: "import externally generated key files and rebuild the addresses",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "ticker",
			Usage:    "pool ticker the bundle belongs to",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "purpose",
			Usage: "purpose of the imported bundle",
			Value: "pledge",
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "network addresses are built for",
			Value: string(config.GetNetwork()),
		},
		&cli.StringFlag{
			Name:  "payment-vkey",
			Usage: "path of the payment verification key file",
		},
		&cli.StringFlag{
			Name:  "payment-skey",
			Usage: "path of the payment signing key file",
		},
		&cli.StringFlag{
			Name:  "stake-vkey",
			Usage: "path of the stake verification key file",
		},
		&cli.StringFlag{
			Name:  "stake-skey",
			Usage: "path of the stake signing key file",
		},
	},
	Action: importWalletAction,
}

// readKeyFile returns nil for an unset flag so absent files simply do not
// take part in the import.
func readKeyFile(path string) ([]byte, error) {
	if len(path) <= 0 {
		return nil, nil
	}
	return os.ReadFile(path)
}

func importWalletAction(ctx *cli.Context) error {
	service, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	req := application.ImportWalletRequest{
		Ticker:  ctx.String("ticker"),
		Purpose: ctx.String("purpose"),
		Network: ctx.String("network"),
	}
	if req.PaymentVKey, err = readKeyFile(ctx.String("payment-vkey")); err != nil {
		return err
	}
	if req.PaymentSKey, err = readKeyFile(ctx.String("payment-skey")); err != nil {
		return err
	}
	if req.StakeVKey, err = readKeyFile(ctx.String("stake-vkey")); err != nil {
		return err
	}
	if req.StakeSKey, err = readKeyFile(ctx.String("stake-skey")); err != nil {
		return err
	}

	bundle, err := service.ImportWallet(context.Background(), req)
	if err != nil {
		return err
	}

	printRespJSON(summarize([]*domain.WalletBundle{bundle}))
	return nil
}
