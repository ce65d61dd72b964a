package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"edrop/internal/delivery/http/response"
	"edrop/internal/domain/entity"
	"edrop/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CertificateHandlerParams holds dependencies for CertificateHandler, injected by Fx.
type CertificateHandlerParams struct {
	fx.In

	CertificateUC usecase.CertificateUsecase
	Logger        *slog.Logger
}

// CertificateHandler holds dependencies for certificate-related handlers
type CertificateHandler struct {
	certificateUC usecase.CertificateUsecase
	logger        *slog.Logger
}

// NewCertificateHandler is the constructor for CertificateHandler
func NewCertificateHandler(params CertificateHandlerParams) *CertificateHandler {
	return &CertificateHandler{
		certificateUC: params.CertificateUC,
		logger:        params.Logger,
	}
}

// IssueCertificateRequest represents the request body for issuing a certificate
type IssueCertificateRequest struct {
	CertType string `json:"cert_type" validate:"omitempty,oneof=individual corporate"`
}

// CertificateResponse is the API view of an issued certificate.
type CertificateResponse struct {
	OrderID       string    `json:"order_id"`
	UniqueCode    string    `json:"unique_code"`
	PickupID      uint64    `json:"pickup_id"`
	RecipientName string    `json:"recipient_name"`
	CertType      string    `json:"cert_type"`
	IssueDate     time.Time `json:"issue_date"`
	CarbonOffset  float64   `json:"carbon_offset"`
	ItemsRecycled int       `json:"items_recycled"`
}

func toCertificateResponse(cert *entity.Certificate) CertificateResponse {
	return CertificateResponse{
		OrderID:       cert.FormattedOrderID(),
		UniqueCode:    cert.UniqueCode,
		PickupID:      cert.PickupID,
		RecipientName: cert.RecipientName,
		CertType:      string(cert.CertType),
		IssueDate:     cert.IssueDate,
		CarbonOffset:  cert.CarbonOffset,
		ItemsRecycled: cert.ItemsRecycled,
	}
}

// IssueCertificate handles issuing the certificate for a collected pickup
func (h *CertificateHandler) IssueCertificate(c echo.Context) error {
	pickupID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid pickup ID")
	}

	var req IssueCertificateRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid certificate input")
	}

	cert, err := h.certificateUC.IssueCertificate(c.Request().Context(), pickupID, entity.CertificateType(req.CertType))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toCertificateResponse(cert), "Certificate issued successfully")
}

// GetCertificates handles listing issued certificates
func (h *CertificateHandler) GetCertificates(c echo.Context) error {
	certs, err := h.certificateUC.GetCertificates(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	views := make([]CertificateResponse, 0, len(certs))
	for _, cert := range certs {
		views = append(views, toCertificateResponse(cert))
	}

	return response.Success(c, http.StatusOK, views, "Certificates retrieved successfully")
}

// GetCertificateQR handles rendering the verification QR code
func (h *CertificateHandler) GetCertificateQR(c echo.Context) error {
	code := c.Param("code")

	qrCode, err := h.certificateUC.GetCertificateQR(c.Request().Context(), code)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	// Return QR code as PNG image
	c.Response().Header().Set("Content-Disposition", "inline; filename=certificate-qr.png")

	return c.Blob(http.StatusOK, "image/png", qrCode)
}
