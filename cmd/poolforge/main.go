package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/poolforge/poolforge/config"
	"github.com/poolforge/poolforge/internal/core/application"
	fileexporter "github.com/poolforge/poolforge/internal/infrastructure/exporter/file"
	dbbadger "github.com/poolforge/poolforge/internal/infrastructure/storage/db/badger"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "poolforge CLI"
	app.Usage = "Command line interface for stake pool operator wallets"
	app.Commands = append(
		app.Commands,
		&generate,
		&importwallet,
		&genseed,
		&validateaddress,
		&convertkey,
		&export,
		&secure,
		&view,
	)

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

// getWalletService wires the oracle, the repositories and the exporter into
// an application service. The returned cleanup closes the state database.
func getWalletService(_ *cli.Context) (application.WalletService, func(), error) {
	oracle, err := config.GetKeyOracle()
	if err != nil {
		return nil, nil, err
	}

	db, err := dbbadger.NewDbManager(
		filepath.Join(config.GetDatadir(), config.DbLocation), nil,
	)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = db.Close() }

	exporter, err := fileexporter.NewBundleExporter(config.GetDatadir())
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	service, err := application.NewWalletService(
		oracle,
		dbbadger.NewRecoveryPhraseRepositoryImpl(db),
		dbbadger.NewBundleRepositoryImpl(db),
		exporter,
	)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return service, cleanup, nil
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to encode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[poolforge] %v\n", err)
	}
	os.Exit(1)
}
