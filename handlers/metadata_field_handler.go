package handlers

import (
	"strconv"

	"docuvault/helper"
	"docuvault/models"
	"docuvault/services"

	"github.com/gin-gonic/gin"
)

type MetadataFieldHandler struct {
	metadataService services.MetadataService
	Helper          *helper.HTTPHelper
}

func NewMetadataFieldHandler(metadataService services.MetadataService, h *helper.HTTPHelper) *MetadataFieldHandler {
	return &MetadataFieldHandler{metadataService: metadataService, Helper: h}
}

func (h *MetadataFieldHandler) CreateField(c *gin.Context) {
	var req models.MetadataFieldCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	field, err := h.metadataService.CreateField(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Metadata field created successfully", field)
}

func (h *MetadataFieldHandler) GetFields(c *gin.Context) {
	fields, err := h.metadataService.ListFields()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", fields)
}

func (h *MetadataFieldHandler) GetField(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	field, err := h.metadataService.GetField(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", field)
}

func (h *MetadataFieldHandler) UpdateField(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req models.MetadataFieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	field, err := h.metadataService.UpdateField(id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Metadata field updated successfully", field)
}

func (h *MetadataFieldHandler) DeleteField(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.metadataService.DeleteField(id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Metadata field deleted successfully", h.Helper.EmptyJsonMap())
}

func (h *MetadataFieldHandler) pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid field ID", h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}
