package handlers

import (
	"errors"
	"net/http"

	request "fotostudio/internal/adapter/http/dto/request"
	response "fotostudio/internal/adapter/http/dto/response"
	"fotostudio/internal/usecase"
	"fotostudio/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidTemplatePayload = pkg.NewDomainErrorSimple("INVALID_TEMPLATE_INPUT", "Invalid template payload", http.StatusUnprocessableEntity)

// TemplateHandler handles HTTP requests for contract templates. All routes
// are operator-only (enforced by middleware).

type TemplateHandler struct {
	usecase usecase.ITemplateUseCase
}

func NewTemplateHandler(uc usecase.ITemplateUseCase) *TemplateHandler {
	return &TemplateHandler{usecase: uc}
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var payload request.CreateTemplateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidTemplatePayload.HTTPStatus, errInvalidTemplatePayload.ToHTTPError())
		return
	}

	tpl, err := h.usecase.Create(c.Request.Context(), payload.Name, payload.BaseDocumentRef, request.ToEntityFields(payload.Fields))
	if err != nil {
		appErr := mapTemplateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTemplate(tpl))
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	tpls, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapTemplateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTemplates(tpls))
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	tpl, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapTemplateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTemplate(tpl))
}

func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var payload request.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidTemplatePayload.HTTPStatus, errInvalidTemplatePayload.ToHTTPError())
		return
	}

	upd := usecase.TemplateUpdate{
		Name:            payload.Name,
		BaseDocumentRef: payload.BaseDocumentRef,
	}
	if payload.Fields != nil {
		fields := request.ToEntityFields(*payload.Fields)
		upd.Fields = &fields
	}

	tpl, err := h.usecase.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		appErr := mapTemplateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTemplate(tpl))
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapTemplateError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func mapTemplateError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTemplateID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidTemplateName),
		errors.Is(err, usecase.ErrInvalidBaseDocumentRef),
		errors.Is(err, usecase.ErrInvalidTemplateField),
		errors.Is(err, usecase.ErrDuplicateFieldID):
		return pkg.NewDomainError("INVALID_TEMPLATE_INPUT", "Invalid template payload", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrTemplateNotFound):
		return pkg.NewDomainErrorSimple("TEMPLATE_NOT_FOUND", "Template not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTemplateInUse):
		return pkg.NewDomainErrorSimple("TEMPLATE_IN_USE", "Template is referenced by existing contracts", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
