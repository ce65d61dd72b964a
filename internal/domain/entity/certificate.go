package entity

import (
	"fmt"
	"time"
)

// CertificateType distinguishes the recipient kind on a proof-of-recycling
// certificate.
type CertificateType string

const (
	// CertificateIndividual is issued to a private dropper.
	CertificateIndividual CertificateType = "individual"
	// CertificateCorporate is issued to a business account.
	CertificateCorporate CertificateType = "corporate"
)

// String returns the string representation of the CertificateType.
func (t CertificateType) String() string {
	return string(t)
}

// IsValid checks if the CertificateType is a valid value.
func (t CertificateType) IsValid() bool {
	switch t {
	case CertificateIndividual, CertificateCorporate:
		return true
	default:
		return false
	}
}

// Certificate is an immutable proof-of-recycling snapshot for one pickup.
// At most one certificate exists per pickup. The carbon-offset figure is
// recomputed from the manifest at issuance rather than copied from the
// wallet, so the certificate stays auditable on its own.
type Certificate struct {
	ID             uint64
	UniqueCode     string // Sequential code, e.g. "CERT-001".
	PickupID       uint64
	RecipientName  string // Owner name snapshot at issuance.
	CertType       CertificateType
	IssueDate      time.Time
	CarbonOffset   float64 // Snapshot in kg, never recomputed later.
	ItemsRecycled  int     // Manifest item count snapshot.
}

// FormattedOrderID renders the pickup reference printed on the certificate,
// e.g. "ORD-007".
func (c *Certificate) FormattedOrderID() string {
	return fmt.Sprintf("ORD-%03d", c.PickupID)
}

// CertificateCode renders the sequential certificate code for a given
// sequence number, e.g. "CERT-001".
func CertificateCode(sequence uint64) string {
	return fmt.Sprintf("CERT-%03d", sequence)
}
