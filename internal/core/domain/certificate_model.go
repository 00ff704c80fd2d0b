package domain

import "encoding/json"

// CertificateKind separates certificates carrying real chain-ready payloads
// from fixed placeholders emitted when the material needed for the real
// certificate (e.g. a pool id) is not available at generation time. Consumers
// must never mistake one for the other.
type CertificateKind int

const (
	// CertificateKindPlaceholder ...
	CertificateKindPlaceholder CertificateKind = iota
	// CertificateKindReal ...
	CertificateKindReal
)

func (k CertificateKind) String() string {
	switch k {
	case CertificateKindPlaceholder:
		return "placeholder"
	case CertificateKindReal:
		return "real"
	default:
		return "unknown"
	}
}

// Fixed payloads for placeholder certificates.
const (
	placeholderStakeCertHex = "82008200581c97ce611e7f40bf23332d119bd4129e8611e449ea1" +
		"ccee2fa9026c181"
	placeholderDelegationCertHex = "8200582032a8c3f17ae5dafc3e947f82b0b418483f0a8680" +
		"def9418c87397f2bd3d35efb5820ff7b882facd434ac990c4293aa60f3b8a8016e7ad5164493" +
		"9597e90c"
)

// Certificate is a registration or delegation certificate attached to a
// stake-pool bundle. Name is the file stem used at export time.
type Certificate struct {
	Kind        CertificateKind
	Name        string
	Type        string
	Description string
	CBORHex     string
}

// NewPlaceholderStakeCertificate returns the fixed placeholder stake address
// registration certificate.
func NewPlaceholderStakeCertificate() Certificate {
	return Certificate{
		Kind:        CertificateKindPlaceholder,
		Name:        "stake",
		Type:        "CertificateShelley",
		Description: "Stake Address Registration Certificate",
		CBORHex:     placeholderStakeCertHex,
	}
}

// NewPlaceholderDelegationCertificate returns the fixed placeholder stake
// address delegation certificate. A real one needs a pool id that does not
// exist yet at bundle generation time.
func NewPlaceholderDelegationCertificate() Certificate {
	return Certificate{
		Kind:        CertificateKindPlaceholder,
		Name:        "delegation",
		Type:        "CertificateShelley",
		Description: "Stake Address Delegation Certificate",
		CBORHex:     placeholderDelegationCertHex,
	}
}

// NewRealCertificate wraps a chain-ready certificate payload.
func NewRealCertificate(name, certType, description, cborHex string) Certificate {
	return Certificate{
		Kind:        CertificateKindReal,
		Name:        name,
		Type:        certType,
		Description: description,
		CBORHex:     cborHex,
	}
}

// IsPlaceholder reports whether the certificate payload is a stand-in rather
// than a chain-ready certificate.
func (c Certificate) IsPlaceholder() bool {
	return c.Kind == CertificateKindPlaceholder
}

// Serialize encodes the certificate in the toolchain envelope format.
func (c Certificate) Serialize() ([]byte, error) {
	return json.MarshalIndent(KeyFile{
		Type:        c.Type,
		Description: c.Description,
		CBORHex:     c.CBORHex,
	}, "", "  ")
}
