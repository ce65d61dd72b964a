package service

// QRCodeService renders verification QR codes for issued certificates.
type QRCodeService interface {
	// GenerateCertificateQR returns a PNG QR code embedding the certificate's
	// unique code for offline verification.
	GenerateCertificateQR(certificateCode string) ([]byte, error)
}
