package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/poolforge/poolforge/internal/infrastructure/oracle/cardanoaddress"
	softoracle "github.com/poolforge/poolforge/internal/infrastructure/oracle/soft"
	"github.com/poolforge/poolforge/pkg/wallet"
)

const (
	// DatadirKey is the local data directory where wallet bundles and the
	// internal state database are stored
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the network addresses are built for. One of "mainnet",
	// "testnet", "preview" or "preprod"
	NetworkKey = "NETWORK"
	// OracleBinaryKey is the name or path of the external key derivation
	// binary
	OracleBinaryKey = "ORACLE_BINARY"
	// OracleFallbackKey enables the in-process oracle when the external
	// binary cannot be found
	OracleFallbackKey = "ORACLE_FALLBACK"
	// MnemonicKey is a recovery phrase to restore wallets from instead of
	// generating a fresh one
	MnemonicKey = "MNEMONIC"

	DbLocation = "db"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("poolforge", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("POOLFORGE")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(NetworkKey, string(wallet.NetworkMainnet))
	vip.SetDefault(OracleBinaryKey, "cardano-address")
	vip.SetDefault(OracleFallbackKey, true)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

//GetNetwork ...
func GetNetwork() wallet.Network {
	network, err := wallet.ParseNetwork(GetString(NetworkKey))
	if err != nil {
		return wallet.NetworkMainnet
	}
	return network
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetKeyOracle returns the external key derivation oracle when its binary is
// reachable, otherwise the in-process one if the fallback is enabled.
func GetKeyOracle() (wallet.KeyOracle, error) {
	binary := GetString(OracleBinaryKey)
	if path, err := exec.LookPath(binary); err == nil {
		return cardanoaddress.NewKeyOracle(path)
	}

	if !GetBool(OracleFallbackKey) {
		return nil, fmt.Errorf(
			"%w: binary %s not found and fallback is disabled",
			wallet.ErrOracleUnavailable, binary,
		)
	}
	log.Warnf("binary %s not found, using the in-process key oracle", binary)
	return softoracle.NewKeyOracle(), nil
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

// GetMnemonic returns the current set mnemonic
func GetMnemonic() []string {
	var mnemonic []string
	if vip.GetString(MnemonicKey) != "" {
		mnemonic = strings.Split(vip.GetString(MnemonicKey), " ")
	}

	return mnemonic
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	if _, err := wallet.ParseNetwork(GetString(NetworkKey)); err != nil {
		return fmt.Errorf(
			"network must be one of 'mainnet', 'testnet', 'preview' or 'preprod'",
		)
	}

	logLevel := GetInt(LogLevelKey)
	if logLevel < 0 || logLevel > 6 {
		return fmt.Errorf("log level must be in range [0, 6]")
	}
	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(datadir, 0755); err != nil {
		return err
	}
	// the state db persists recovery phrases and signing keys in plaintext,
	// its directory stays owner-only
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation), 0700)
}

func makeDirectoryIfNotExists(path string, perm os.FileMode) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|perm)
	}
	return nil
}
