package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"docuvault/helper"
	"docuvault/models"
	"docuvault/services"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService services.DocumentService
	Helper          *helper.HTTPHelper
}

func NewDocumentHandler(documentService services.DocumentService, h *helper.HTTPHelper) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, Helper: h}
}

// CreateDocument handles the multipart create path: title, optional type,
// optional metadata JSON, optional file.
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	input, ok := h.bindCommitForm(c)
	if !ok {
		return
	}
	if input.Title == "" {
		h.Helper.SendBadRequest(c, "title is required", h.Helper.EmptyJsonMap())
		return
	}

	doc, err := h.documentService.CommitVersion(c.Request.Context(), input)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Document created successfully", doc)
}

// CreateDocumentVersion uploads a new file for an existing document,
// producing the next version.
func (h *DocumentHandler) CreateDocumentVersion(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	input, okForm := h.bindCommitForm(c)
	if !okForm {
		return
	}
	if input.FileBytes == nil {
		h.Helper.SendBadRequest(c, "file is required for a new version", h.Helper.EmptyJsonMap())
		return
	}
	input.DocumentID = &id

	doc, err := h.documentService.CommitVersion(c.Request.Context(), input)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Version created successfully", doc)
}

// UpdateDocument edits title/type/metadata without creating a version.
func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var req models.DocumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Document updated successfully", doc)
}

func (h *DocumentHandler) GetDocuments(c *gin.Context) {
	var params models.DocumentListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	docs, total, err := h.documentService.ListDocuments(params)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"documents":  docs,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, int(total)),
	})
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.documentService.GetDocument(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", doc)
}

func (h *DocumentHandler) GetDocumentVersions(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	versions, err := h.documentService.GetVersions(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", versions)
}

// DownloadDocument streams the stored file of a version, defaulting to the latest.
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	var versionID *uint
	if raw := c.Query("version_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.Helper.SendBadRequest(c, "Invalid version ID", h.Helper.EmptyJsonMap())
			return
		}
		v := uint(parsed)
		versionID = &v
	}

	version, data, err := h.documentService.DownloadVersion(c.Request.Context(), id, versionID)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", helper.AttachmentName(version.FileName))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Document deleted successfully", h.Helper.EmptyJsonMap())
}

func (h *DocumentHandler) pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid document ID", h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}

// bindCommitForm reads the shared multipart fields of the create and
// new-version endpoints.
func (h *DocumentHandler) bindCommitForm(c *gin.Context) (models.CommitVersionInput, bool) {
	var input models.CommitVersionInput
	input.Title = c.PostForm("title")

	if raw := c.PostForm("document_type_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			h.Helper.SendBadRequest(c, "Invalid document type ID", h.Helper.EmptyJsonMap())
			return input, false
		}
		typeID := uint(parsed)
		input.DocumentTypeID = &typeID
	}

	if raw := c.PostForm("metadata"); raw != "" {
		var values map[string]interface{}
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			h.Helper.SendBadRequest(c, "Invalid metadata JSON", h.Helper.EmptyJsonMap())
			return input, false
		}
		input.MetadataValues = values
	}

	fileHeader, err := c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return input, false
	}
	if fileHeader != nil {
		f, err := fileHeader.Open()
		if err != nil {
			h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
			return input, false
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
			return input, false
		}
		input.FileBytes = data
		input.FileName = fileHeader.Filename
	}

	return input, true
}
