package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/poolforge/poolforge/pkg/keycodec"
)

var convertkey = cli.Command{
	Name:      "convert-key",
	Usage:     "convert key material to compact encoding in hex",
	ArgsUsage: "<key material>",
	Action:    convertKeyAction,
}

func convertKeyAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return &invalidUsageError{ctx, "convert-key"}
	}

	fmt.Println(keycodec.CompactHexFromAny(ctx.Args().First()))
	return nil
}
