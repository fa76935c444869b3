package handlers

import (
	"strconv"

	"docuvault/helper"
	"docuvault/models"
	"docuvault/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	Helper          *helper.HTTPHelper
}

func NewCategoryHandler(categoryService services.CategoryService, h *helper.HTTPHelper) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, Helper: h}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	category, err := h.categoryService.CreateCategory(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Category created successfully", category)
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", category)
}

func (h *CategoryHandler) AddChild(c *gin.Context) {
	parentID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	childID, ok := h.pathID(c, "child_id")
	if !ok {
		return
	}

	if err := h.categoryService.AddChild(parentID, childID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Child category attached successfully", h.Helper.EmptyJsonMap())
}

func (h *CategoryHandler) AttachToType(c *gin.Context) {
	categoryID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	typeID, ok := h.pathID(c, "type_id")
	if !ok {
		return
	}

	if err := h.categoryService.AttachToType(categoryID, typeID); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Category attached to document type successfully", h.Helper.EmptyJsonMap())
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Category deleted successfully", h.Helper.EmptyJsonMap())
}

func (h *CategoryHandler) pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid category ID", h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}
