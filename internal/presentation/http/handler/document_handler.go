package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/dto/response"
)

// DocumentHandler serves, regenerates and prints receipt PDFs
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Download returns the receipt PDF as an attachment
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := receiptID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	doc, err := h.documentService.Load(c.Request.Context(), id, actingUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// Exists reports whether the receipt PDF has been written
func (h *DocumentHandler) Exists(c *gin.Context) {
	id, err := receiptID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	exists, err := h.documentService.Exists(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// Regenerate renders the receipt PDF again
func (h *DocumentHandler) Regenerate(c *gin.Context) {
	id, err := receiptID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	name, err := h.documentService.Regenerate(c.Request.Context(), id, actingUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "PDF regenerated", "filename": name})
}

// Print sends the receipt PDF to the configured printer
func (h *DocumentHandler) Print(c *gin.Context) {
	id, err := receiptID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	doc, err := h.documentService.Print(c.Request.Context(), id, actingUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"message":  "Document sent to printer",
		"filename": doc.Filename,
		"printer":  h.documentService.PrinterStatus(c.Request.Context()),
	})
}

// PrinterStatus returns the configured printer and whether it is reachable
func (h *DocumentHandler) PrinterStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.documentService.PrinterStatus(c.Request.Context()))
}
