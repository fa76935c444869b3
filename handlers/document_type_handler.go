package handlers

import (
	"strconv"

	"docuvault/helper"
	"docuvault/models"
	"docuvault/services"

	"github.com/gin-gonic/gin"
)

type DocumentTypeHandler struct {
	typeService services.DocumentTypeService
	Helper      *helper.HTTPHelper
}

func NewDocumentTypeHandler(typeService services.DocumentTypeService, h *helper.HTTPHelper) *DocumentTypeHandler {
	return &DocumentTypeHandler{typeService: typeService, Helper: h}
}

func (h *DocumentTypeHandler) CreateType(c *gin.Context) {
	var req models.DocumentTypeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	docType, err := h.typeService.CreateType(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Document type created successfully", docType)
}

func (h *DocumentTypeHandler) GetTypes(c *gin.Context) {
	types, err := h.typeService.ListTypes()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", types)
}

func (h *DocumentTypeHandler) GetType(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	docType, err := h.typeService.GetType(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", docType)
}

// UpdateFieldAssociations replaces the type's full field association set.
func (h *DocumentTypeHandler) UpdateFieldAssociations(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req models.FieldAssociationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	docType, err := h.typeService.UpdateFieldAssociations(id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Field associations updated successfully", docType)
}

func (h *DocumentTypeHandler) DeleteType(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.typeService.DeleteType(id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Document type deleted successfully", h.Helper.EmptyJsonMap())
}

func (h *DocumentTypeHandler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid document type ID", h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}
