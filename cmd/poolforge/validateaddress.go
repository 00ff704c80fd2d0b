package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poolforge/poolforge/pkg/wallet"
)

var validateaddress = cli.Command{
	Name:      "validate-address",
	Usage:     "check that an address is well formed",
	ArgsUsage: "<address>",
	Action:    validateAddressAction,
}

func validateAddressAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return &invalidUsageError{ctx, "validate-address"}
	}

	address := ctx.Args().First()
	if !wallet.ValidateAddress(address) {
		return fmt.Errorf("address %s is not valid", address)
	}

	fmt.Printf("address %s is valid\n", address)
	return nil
}
