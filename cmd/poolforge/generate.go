package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/poolforge/poolforge/config"
	"github.com/poolforge/poolforge/internal/core/application"
	"github.com/poolforge/poolforge/internal/core/domain"
)

var generate = cli.Command{
	Name:  "generate",
	Usage: "generate wallet bundles for a ticker",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "ticker",
			Usage:    "pool ticker the bundles belong to",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  "purpose",
			Usage: "purposes to issue a bundle for (default: pledge and rewards)",
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "network addresses are built for",
			Value: string(config.GetNetwork()),
		},
		&cli.BoolFlag{
			Name:  "complete",
			Usage: "issue the full eight-role stake pool bundle with credentials and certificates",
		},
	},
	Action: generateAction,
}

// bundleSummary is what gets printed for each issued bundle; signing material
// stays on disk only.
type bundleSummary struct {
	Ticker        string   `json:"ticker"`
	Purpose       string   `json:"purpose"`
	Network       string   `json:"network"`
	BaseAddress   string   `json:"base_address"`
	RewardAddress string   `json:"reward_address"`
	Degraded      bool     `json:"degraded,omitempty"`
	Certificates  []string `json:"certificates,omitempty"`
}

func summarize(bundles []*domain.WalletBundle) []bundleSummary {
	summaries := make([]bundleSummary, 0, len(bundles))
	for _, bundle := range bundles {
		summary := bundleSummary{
			Ticker:        bundle.Ticker,
			Purpose:       bundle.Purpose,
			Network:       bundle.Network,
			BaseAddress:   bundle.BaseAddress,
			RewardAddress: bundle.RewardAddress,
			Degraded:      bundle.Degraded,
		}
		for _, certificate := range bundle.Certificates {
			summary.Certificates = append(
				summary.Certificates,
				certificate.Name+" ("+certificate.Kind.String()+")",
			)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func generateAction(ctx *cli.Context) error {
	service, cleanup, err := getWalletService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	// POOLFORGE_MNEMONIC restores the ticker's wallets from an existing
	// recovery phrase instead of generating a fresh one
	req := application.GenerateWalletRequest{
		Ticker:   ctx.String("ticker"),
		Purposes: ctx.StringSlice("purpose"),
		Network:  ctx.String("network"),
		Mnemonic: config.GetMnemonic(),
	}

	var bundles []*domain.WalletBundle
	if ctx.Bool("complete") {
		bundles, err = service.GenerateStakePoolBundle(context.Background(), req)
	} else {
		bundles, err = service.GenerateWallet(context.Background(), req)
	}
	if err != nil {
		return err
	}

	printRespJSON(summarize(bundles))
	return nil
}
