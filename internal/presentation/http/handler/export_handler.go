package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/dto/response"
)

// ExportHandler handles the export-and-purge action
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export writes every receipt and item to a workbook and empties the store
func (h *ExportHandler) Export(c *gin.Context) {
	result, err := h.exportService.ExportAndPurge(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"message":  result.Message(),
		"filename": result.Filename,
		"receipts": result.Receipts,
		"items":    result.Items,
	})
}

// Download returns a previously written export workbook
func (h *ExportHandler) Download(c *gin.Context) {
	filename := c.Param("filename")
	path, err := h.exportService.Path(filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, filename)
}
