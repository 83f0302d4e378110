package handlers

import (
	"errors"
	"log"
	"net/http"

	request "fotostudio/internal/adapter/http/dto/request"
	response "fotostudio/internal/adapter/http/dto/response"
	"fotostudio/internal/adapter/http/middleware"
	"fotostudio/internal/usecase"
	"fotostudio/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidContractPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errContractForbidden      = pkg.NewDomainErrorSimple("FORBIDDEN", "Insufficient permissions", http.StatusForbidden)
)

// ContractHandler handles HTTP requests for the contract lifecycle.
//
// Routes keyed by contract id accept operators and the owning client; the
// ownership check happens here, after the record is loaded.

type ContractHandler struct {
	usecase usecase.IContractUseCase
}

func NewContractHandler(uc usecase.IContractUseCase) *ContractHandler {
	return &ContractHandler{usecase: uc}
}

// SendContract creates a contract from a template for a client. Operator
// only. Duplicate sends are allowed and create independent contracts.
func (h *ContractHandler) SendContract(c *gin.Context) {
	var payload request.SendContractRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidContractPayload.HTTPStatus, errInvalidContractPayload.ToHTTPError())
		return
	}

	created, err := h.usecase.Send(c.Request.Context(), payload.TemplateID, payload.ClientID)
	if err != nil {
		log.Printf("[contract][handler] send failed template_id=%s client_id=%s err=%v", payload.TemplateID, payload.ClientID, err)
		appErr := mapContractError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[contract][handler] send success contract_id=%s", created.ID)

	c.JSON(http.StatusOK, response.FromContract(created))
}

// GetContract returns the contract merged with its template projection.
func (h *ContractHandler) GetContract(c *gin.Context) {
	proj, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapContractError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if !middleware.ActorMayAccessClient(c, proj.ClientID) {
		c.JSON(errContractForbidden.HTTPStatus, errContractForbidden.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromContractProjection(proj))
}

// FillContract merges submitted field values into the contract.
func (h *ContractHandler) FillContract(c *gin.Context) {
	var payload request.FillContractRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidContractPayload.HTTPStatus, errInvalidContractPayload.ToHTTPError())
		return
	}

	if !h.checkOwnership(c) {
		return
	}

	updated, err := h.usecase.Fill(c.Request.Context(), c.Param("id"), payload.FieldValues)
	if err != nil {
		appErr := mapContractError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromContract(updated))
}

// RequestOtp mints and mails a fresh signature code.
func (h *ContractHandler) RequestOtp(c *gin.Context) {
	if !h.checkOwnership(c) {
		return
	}

	updated, err := h.usecase.RequestOtp(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("[contract][handler] request-otp failed contract_id=%s err=%v", c.Param("id"), err)
		appErr := mapContractError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromContract(updated))
}

// SignContract validates the submitted code and finalizes the signature.
func (h *ContractHandler) SignContract(c *gin.Context) {
	var payload request.SignContractRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidContractPayload.HTTPStatus, errInvalidContractPayload.ToHTTPError())
		return
	}

	if !h.checkOwnership(c) {
		return
	}

	signed, err := h.usecase.Sign(c.Request.Context(), c.Param("id"), payload.OtpCode)
	if err != nil {
		log.Printf("[contract][handler] sign failed contract_id=%s err=%v", c.Param("id"), err)
		appErr := mapContractError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[contract][handler] sign success contract_id=%s", signed.ID)

	c.JSON(http.StatusOK, response.FromContract(signed))
}

// ListClientContracts returns the contracts of one client. Middleware admits
// operators and the owning client.
func (h *ContractHandler) ListClientContracts(c *gin.Context) {
	contracts, err := h.usecase.ListByClientID(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		appErr := mapContractError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromContracts(contracts))
}

// ListAllContracts is the admin dashboard listing. Operator only.
func (h *ContractHandler) ListAllContracts(c *gin.Context) {
	contracts, err := h.usecase.ListAll(c.Request.Context())
	if err != nil {
		appErr := mapContractError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromContracts(contracts))
}

// checkOwnership loads the contract to resolve the owning client before a
// mutation. Writes the error response itself and reports whether to proceed.
func (h *ContractHandler) checkOwnership(c *gin.Context) bool {
	proj, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapContractError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return false
	}
	if !middleware.ActorMayAccessClient(c, proj.ClientID) {
		c.JSON(errContractForbidden.HTTPStatus, errContractForbidden.ToHTTPError())
		return false
	}
	return true
}

func mapContractError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidContractID),
		errors.Is(err, usecase.ErrInvalidClientID),
		errors.Is(err, usecase.ErrInvalidTemplateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrContractNotFound):
		return pkg.NewDomainErrorSimple("CONTRACT_NOT_FOUND", "Contract not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTemplateNotFound):
		return pkg.NewDomainErrorSimple("TEMPLATE_NOT_FOUND", "Template not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrClientNotFound):
		return pkg.NewDomainErrorSimple("CLIENT_NOT_FOUND", "Client not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrContractSigned):
		return pkg.NewDomainErrorSimple("CONTRACT_ALREADY_SIGNED", "Contract is already signed", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOtp):
		return pkg.NewDomainErrorSimple("INVALID_OTP", "Invalid or expired code", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOtpDelivery):
		return pkg.NewDomainErrorSimple("OTP_DELIVERY_FAILED", "Could not deliver the signature code", http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrRenderFailed):
		return pkg.NewDomainErrorSimple("RENDER_FAILED", "Could not render the signed document", http.StatusInternalServerError)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
