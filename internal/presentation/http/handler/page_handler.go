package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
)

// PageHandler renders the HTML pages
type PageHandler struct {
	receiptService  *service.ReceiptService
	documentService *service.DocumentService
	driver          string
}

// NewPageHandler creates a new page handler. driver names the configured store.
func NewPageHandler(receiptService *service.ReceiptService, documentService *service.DocumentService, driver string) *PageHandler {
	return &PageHandler{
		receiptService:  receiptService,
		documentService: documentService,
		driver:          driver,
	}
}

// Index renders the receipt form
func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     "Nota Baru",
		"User":      actingUser(c),
		"Companies": entity.Companies(),
		"Today":     time.Now().Format(entity.DateLayout),
	})
}

// History renders the receipt history
func (h *PageHandler) History(c *gin.Context) {
	c.HTML(http.StatusOK, "history.html", gin.H{
		"Title":     "Riwayat",
		"User":      actingUser(c),
		"Companies": entity.Companies(),
	})
}

// Setup shows the store and printer configuration
func (h *PageHandler) Setup(c *gin.Context) {
	data := gin.H{
		"Title":     "Setup",
		"User":      actingUser(c),
		"Driver":    h.driver,
		"Reachable": true,
		"Printer":   h.documentService.PrinterStatus(c.Request.Context()),
	}
	if err := h.receiptService.Ping(c.Request.Context()); err != nil {
		data["Reachable"] = false
		data["Error"] = err.Error()
	}
	c.HTML(http.StatusOK, "setup.html", data)
}
