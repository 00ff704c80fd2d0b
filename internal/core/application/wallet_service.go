package application

import (
	"context"
	"encoding/hex"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/poolforge/poolforge/internal/core/domain"
	"github.com/poolforge/poolforge/internal/core/ports"
	"github.com/poolforge/poolforge/pkg/keycodec"
	"github.com/poolforge/poolforge/pkg/wallet"
)

var (
	// ErrInvalidNetwork ...
	ErrInvalidNetwork = fmt.Errorf("network must be one of mainnet, testnet, preview, preprod")
	// ErrInvalidAddress is returned by the import flow when a constructed
	// address does not decode to a valid prefix
	ErrInvalidAddress = fmt.Errorf("constructed address failed validation")
)

// Default purposes issued when the caller does not name one.
var defaultPurposes = []string{"pledge", "rewards"}

// WalletService sequences derivation, address construction and verification
// into complete wallet bundles and hands them to persistence.
type WalletService interface {
	// GenSeed returns a fresh 24 word recovery phrase without persisting it.
	GenSeed(ctx context.Context) ([]string, error)
	// GenerateWallet issues a simple operator wallet (payment and staking
	// roles) for every requested purpose under the ticker's shared phrase.
	GenerateWallet(ctx context.Context, req GenerateWalletRequest) ([]*domain.WalletBundle, error)
	// GenerateStakePoolBundle issues the full eight-role stake pool bundle
	// with credentials and certificates for every requested purpose.
	GenerateStakePoolBundle(ctx context.Context, req GenerateWalletRequest) ([]*domain.WalletBundle, error)
	// ImportWallet builds and verifies addresses from externally supplied
	// key-file envelopes, skipping derivation.
	ImportWallet(ctx context.Context, req ImportWalletRequest) (*domain.WalletBundle, error)
	// ValidateAddress reports whether the given text is a well-formed address.
	ValidateAddress(address string) bool
	// ConvertKey normalizes key material in any known representation to
	// compact encoding in hex.
	ConvertKey(material string) string
	// ExportBundleArchive packs all files of an exported bundle into one
	// password-protected archive for backup or transfer and returns its path.
	ExportBundleArchive(ctx context.Context, ticker, purpose, password string) (string, error)
	// SecureBundleFiles encrypts the sensitive files of an exported bundle
	// under the given password and returns how many were secured.
	SecureBundleFiles(ctx context.Context, ticker, purpose, password string) (int, error)
	// ListSecuredFiles returns the names of the secured files of a bundle.
	ListSecuredFiles(ctx context.Context, ticker, purpose string) ([]string, error)
	// ViewSecuredFile decrypts one secured file in memory.
	ViewSecuredFile(ctx context.Context, ticker, purpose, password, name string) ([]byte, error)
}

// GenerateWalletRequest is the input of the generate flows.
type GenerateWalletRequest struct {
	Ticker   string
	Purposes []string
	Network  string
	// Mnemonic restores the ticker's wallets from an existing recovery
	// phrase instead of generating a fresh one. Ignored once the ticker
	// already has a stored phrase.
	Mnemonic []string
}

func (r GenerateWalletRequest) validate() error {
	if len(domain.NormalizeTicker(r.Ticker)) <= 0 {
		return domain.ErrNullTicker
	}
	if _, err := wallet.ParseNetwork(r.Network); err != nil {
		return ErrInvalidNetwork
	}
	if len(r.Mnemonic) > 0 && !wallet.IsMnemonicValid(r.Mnemonic) {
		return wallet.ErrInvalidMnemonic
	}
	return nil
}

func (r GenerateWalletRequest) purposes() []string {
	if len(r.Purposes) <= 0 {
		return defaultPurposes
	}
	return r.Purposes
}

// ImportWalletRequest carries the raw contents of externally supplied
// key-file envelopes. Absent files are nil.
type ImportWalletRequest struct {
	Ticker  string
	Purpose string
	Network string

	PaymentVKey []byte
	PaymentSKey []byte
	StakeVKey   []byte
	StakeSKey   []byte
}

func (r ImportWalletRequest) validate() error {
	if len(domain.NormalizeTicker(r.Ticker)) <= 0 {
		return domain.ErrNullTicker
	}
	if len(r.Purpose) <= 0 {
		return domain.ErrNullPurpose
	}
	if _, err := wallet.ParseNetwork(r.Network); err != nil {
		return ErrInvalidNetwork
	}
	return nil
}

type walletService struct {
	oracle           wallet.KeyOracle
	phraseRepository domain.RecoveryPhraseRepository
	bundleRepository domain.BundleRepository
	exporter         ports.BundleExporter
}

// NewWalletService returns a WalletService backed by the given oracle,
// repositories and exporter.
func NewWalletService(
	oracle wallet.KeyOracle,
	phraseRepository domain.RecoveryPhraseRepository,
	bundleRepository domain.BundleRepository,
	exporter ports.BundleExporter,
) (WalletService, error) {
	if oracle == nil {
		return nil, wallet.ErrNullOracle
	}
	return &walletService{
		oracle:           oracle,
		phraseRepository: phraseRepository,
		bundleRepository: bundleRepository,
		exporter:         exporter,
	}, nil
}

func (s *walletService) GenSeed(ctx context.Context) ([]string, error) {
	return wallet.NewMnemonic(wallet.NewMnemonicOpts{
		EntropySize: wallet.DefaultEntropySize,
	})
}

func (s *walletService) GenerateWallet(
	ctx context.Context, req GenerateWalletRequest,
) ([]*domain.WalletBundle, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return s.generate(ctx, req, wallet.SimpleWalletRoles(), false)
}

func (s *walletService) GenerateStakePoolBundle(
	ctx context.Context, req GenerateWalletRequest,
) ([]*domain.WalletBundle, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	return s.generate(ctx, req, wallet.StakePoolRoles(), true)
}

func (s *walletService) generate(
	ctx context.Context,
	req GenerateWalletRequest,
	roles []wallet.KeyRole,
	complete bool,
) ([]*domain.WalletBundle, error) {
	network, _ := wallet.ParseNetwork(req.Network)

	phrase, err := s.sharedPhrase(ctx, req.Ticker, req.Mnemonic)
	if err != nil {
		return nil, err
	}

	hdWallet, err := wallet.NewWalletFromMnemonic(ctx, wallet.NewWalletFromMnemonicOpts{
		Oracle:   s.oracle,
		Mnemonic: phrase.Words,
	})
	if err != nil {
		return nil, err
	}

	builder, err := wallet.NewAddressBuilder(s.oracle)
	if err != nil {
		return nil, err
	}

	bundles := make([]*domain.WalletBundle, 0, len(req.purposes()))
	for _, purpose := range req.purposes() {
		pairs, err := hdWallet.DeriveAllKeyPairs(ctx, wallet.DeriveAllKeyPairsOpts{
			Roles: roles,
		})
		if err != nil {
			return nil, err
		}

		bundle, err := s.assembleBundle(
			ctx, builder, req.Ticker, purpose, network, phrase.Words, pairs, complete,
		)
		if err != nil {
			return nil, err
		}
		if err := s.persistBundle(ctx, bundle); err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}
	return bundles, nil
}

func (s *walletService) assembleBundle(
	ctx context.Context,
	builder *wallet.AddressBuilder,
	ticker, purpose string,
	network wallet.Network,
	mnemonic []string,
	pairs map[wallet.KeyRole]*wallet.KeyPair,
	complete bool,
) (*domain.WalletBundle, error) {
	bundle, err := domain.NewWalletBundle(ticker, purpose, string(network))
	if err != nil {
		return nil, err
	}
	bundle.Mnemonic = mnemonic

	paymentVKey := pairs[wallet.RolePayment].VerificationKey
	stakeVKey := pairs[wallet.RoleStaking].VerificationKey

	baseAddr, baseCandidate, err := builder.VerifiedBaseAddress(ctx, wallet.BaseAddressOpts{
		PaymentVKey: paymentVKey,
		StakeVKey:   stakeVKey,
		Network:     network,
	})
	if err != nil {
		return nil, err
	}
	rewardAddr, rewardCandidate, err := builder.VerifiedRewardAddress(ctx, wallet.StakeAddressOpts{
		StakeVKey: stakeVKey,
		Network:   network,
	})
	if err != nil {
		return nil, err
	}
	if !wallet.ValidateAddress(baseAddr) || !wallet.ValidateAddress(rewardAddr) {
		return nil, ErrInvalidAddress
	}

	bundle.BaseAddress = baseAddr
	bundle.BaseAddressCandidate = baseCandidate
	bundle.RewardAddress = rewardAddr
	bundle.RewardAddressCandidate = rewardCandidate

	for role, pair := range pairs {
		bundle.Keys[role.String()] = keyMaterial(pair)
	}

	if complete {
		paymentAddr, err := builder.PaymentAddress(ctx, wallet.PaymentAddressOpts{
			PaymentVKey: paymentVKey,
			Network:     network,
		})
		if err != nil {
			return nil, err
		}
		bundle.PaymentAddress = paymentAddr

		credentialRoles := []wallet.KeyRole{
			wallet.RolePayment, wallet.RoleStaking,
			wallet.RoleMultisigPayment, wallet.RoleMultisigStaking,
		}
		for _, role := range credentialRoles {
			cred, degraded, err := builder.Credential(ctx, pairs[role].VerificationKey)
			if err != nil {
				return nil, err
			}
			if degraded {
				log.Warnf(
					"credential hash for %s role computed with non-canonical fallback",
					role,
				)
				bundle.Degraded = true
			}
			bundle.Credentials[role.String()] = hex.EncodeToString(cred)
		}

		bundle.Certificates = []domain.Certificate{
			domain.NewPlaceholderStakeCertificate(),
			domain.NewPlaceholderDelegationCertificate(),
		}
	}

	return bundle, nil
}

func (s *walletService) ImportWallet(
	ctx context.Context, req ImportWalletRequest,
) (*domain.WalletBundle, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	network, _ := wallet.ParseNetwork(req.Network)

	imported := map[string]*domain.KeyFile{}
	for name, raw := range map[string][]byte{
		"payment_vkey": req.PaymentVKey,
		"payment_skey": req.PaymentSKey,
		"stake_vkey":   req.StakeVKey,
		"stake_skey":   req.StakeSKey,
	} {
		if len(raw) <= 0 {
			continue
		}
		keyFile, err := domain.ParseKeyFile(raw)
		if err != nil {
			log.Warnf("skipping malformed %s key file", name)
			continue
		}
		imported[name] = keyFile
	}
	if len(imported) <= 0 {
		return nil, domain.ErrNoValidKeysProvided
	}

	var paymentVKey, stakeVKey string
	if keyFile, ok := imported["payment_vkey"]; ok {
		vk, err := keycodec.Bech32FromCompactHex(keyFile.CBORHex, "addr_vk")
		if err != nil {
			return nil, domain.ErrMalformedKeyFile
		}
		paymentVKey = vk
	}
	if keyFile, ok := imported["stake_vkey"]; ok {
		vk, err := keycodec.Bech32FromCompactHex(keyFile.CBORHex, "stake_vk")
		if err != nil {
			return nil, domain.ErrMalformedKeyFile
		}
		stakeVKey = vk
	}

	builder, err := wallet.NewAddressBuilder(s.oracle)
	if err != nil {
		return nil, err
	}

	baseAddr, baseCandidate, err := builder.VerifiedBaseAddress(ctx, wallet.BaseAddressOpts{
		PaymentVKey: paymentVKey,
		StakeVKey:   stakeVKey,
		Network:     network,
	})
	if err != nil {
		return nil, err
	}
	rewardAddr, rewardCandidate, err := builder.VerifiedRewardAddress(ctx, wallet.StakeAddressOpts{
		StakeVKey: stakeVKey,
		Network:   network,
	})
	if err != nil {
		return nil, err
	}
	if !wallet.ValidateAddress(baseAddr) || !wallet.ValidateAddress(rewardAddr) {
		return nil, ErrInvalidAddress
	}

	bundle, err := domain.NewWalletBundle(req.Ticker, req.Purpose, req.Network)
	if err != nil {
		return nil, err
	}
	bundle.BaseAddress = baseAddr
	bundle.BaseAddressCandidate = baseCandidate
	bundle.RewardAddress = rewardAddr
	bundle.RewardAddressCandidate = rewardCandidate
	bundle.Keys[wallet.RolePayment.String()] = importedMaterial(
		wallet.RolePayment, imported["payment_skey"], imported["payment_vkey"],
	)
	bundle.Keys[wallet.RoleStaking.String()] = importedMaterial(
		wallet.RoleStaking, imported["stake_skey"], imported["stake_vkey"],
	)

	if err := s.persistBundle(ctx, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (s *walletService) ValidateAddress(address string) bool {
	return wallet.ValidateAddress(address)
}

func (s *walletService) ConvertKey(material string) string {
	return keycodec.CompactHexFromAny(material)
}

// sharedPhrase implements the one-phrase-per-ticker policy: the supplied
// words (or a fresh candidate when none are given) go through the repository,
// which keeps whichever phrase got stored first for the ticker.
func (s *walletService) sharedPhrase(
	ctx context.Context, ticker string, words []string,
) (*domain.RecoveryPhrase, error) {
	if len(words) <= 0 {
		var err error
		words, err = wallet.NewMnemonic(wallet.NewMnemonicOpts{
			EntropySize: wallet.DefaultEntropySize,
		})
		if err != nil {
			return nil, err
		}
	}
	candidate, err := domain.NewRecoveryPhrase(ticker, words)
	if err != nil {
		return nil, err
	}

	phrase, err := s.phraseRepository.GetOrCreatePhrase(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if phrase.CreatedAt.Equal(candidate.CreatedAt) {
		log.Infof("created new shared recovery phrase for %s", phrase.Ticker)
	} else {
		log.Infof("reusing shared recovery phrase for %s", phrase.Ticker)
	}
	return phrase, nil
}

func (s *walletService) persistBundle(
	ctx context.Context, bundle *domain.WalletBundle,
) error {
	if err := s.bundleRepository.AddBundle(ctx, bundle); err != nil {
		return err
	}
	dir, err := s.exporter.ExportBundle(ctx, bundle)
	if err != nil {
		return err
	}
	log.Infof("wallet bundle %s-%s exported to %s", bundle.Ticker, bundle.Purpose, dir)
	return nil
}

func keyMaterial(pair *wallet.KeyPair) domain.KeyMaterial {
	role := pair.Role
	return domain.KeyMaterial{
		Role:            role.String(),
		SigningKey:      pair.SigningKey,
		VerificationKey: pair.VerificationKey,
		SigningKeyFile: domain.NewKeyFile(
			role.SigningKeyType(),
			role.Description()+" Signing Key",
			keycodec.CompactHexFromAny(pair.SigningKey),
		),
		VerificationKeyFile: domain.NewKeyFile(
			role.VerificationKeyType(),
			role.Description()+" Verification Key",
			keycodec.CompactHexFromAny(pair.VerificationKey),
		),
	}
}

func importedMaterial(
	role wallet.KeyRole, signing, verification *domain.KeyFile,
) domain.KeyMaterial {
	material := domain.KeyMaterial{Role: role.String()}
	if signing != nil {
		material.SigningKey = signing.CBORHex
		material.SigningKeyFile = *signing
	}
	if verification != nil {
		material.VerificationKey = verification.CBORHex
		material.VerificationKeyFile = *verification
	}
	return material
}
