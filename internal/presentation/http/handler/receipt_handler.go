package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/dto/request"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/dto/response"
)

const defaultRecipientLimit = 20

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List returns the receipt history, newest first
func (h *ReceiptHandler) List(c *gin.Context) {
	var q request.ListReceiptsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	list, err := h.receiptService.List(c.Request.Context(), &service.ListReceiptsInput{
		CompanyCode: q.Company,
		Search:      q.Search,
		Date:        q.Date,
		Page:        q.Page,
		PerPage:     q.PerPage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create saves a receipt
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	out, err := h.receiptService.Create(c.Request.Context(), &service.CreateReceiptInput{
		CompanyCode:   req.CompanyCode,
		ReceiptNumber: req.ReceiptNumber,
		Date:          req.Date,
		Recipient:     req.Recipient,
		Address:       req.Address,
		Items:         req.Drafts(),
		Discount:      req.Discount,
		DownPayment:   req.DownPayment,
		IssuedBy:      actingUser(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"receipt_id":     out.Receipt.ID,
		"receipt_number": out.Receipt.ReceiptNumber,
		"total_amount":   out.Receipt.TotalAmount.InexactFloat64(),
		"totals":         totalsJSON(out.Totals),
		"document":       out.Document,
	})
}

// Get returns one receipt with its items
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, err := receiptID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	receipt, err := h.receiptService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}

// Preview prices a form without saving it
func (h *ReceiptHandler) Preview(c *gin.Context) {
	var req request.PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	out, err := h.receiptService.Preview(req.FormInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]gin.H, len(out.Items))
	for i, it := range out.Items {
		items[i] = gin.H{
			"quantity":       it.Quantity,
			"item_type":      it.ItemType,
			"size":           it.Size,
			"color":          it.Color,
			"unit_price":     it.UnitPrice.InexactFloat64(),
			"quantity_count": it.QuantityCount,
			"size_area":      it.SizeArea.InexactFloat64(),
			"total_price":    it.Total.InexactFloat64(),
		}
	}
	response.OK(c, gin.H{
		"company": out.Company,
		"policy":  out.Policy.String(),
		"items":   items,
		"totals":  totalsJSON(out),
	})
}

// NextNumber suggests the next receipt number. An empty suggestion is
// returned when none can be derived.
func (h *ReceiptHandler) NextNumber(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"receipt_number": h.receiptService.NextNumber(c.Request.Context(), c.Query("company")),
	})
}

// Recipients lists previously used recipients matching ?q=
func (h *ReceiptHandler) Recipients(c *gin.Context) {
	limit := defaultRecipientLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	names, err := h.receiptService.Recipients(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipients": names})
}

// Stats reports store usage against the export threshold
func (h *ReceiptHandler) Stats(c *gin.Context) {
	stats, err := h.receiptService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Companies lists the issuing companies
func (h *ReceiptHandler) Companies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"companies": entity.Companies()})
}

func totalsJSON(out *service.FormOutput) gin.H {
	totals := gin.H{
		"subtotal":    out.Subtotal.InexactFloat64(),
		"grand_total": out.GrandTotal.InexactFloat64(),
	}
	if v := out.VAT; v != nil {
		totals["tax"] = v.Tax.InexactFloat64()
	}
	if d := out.DiscountDP; d != nil {
		totals["discount"] = d.Discount.InexactFloat64()
		totals["after_discount"] = d.AfterDiscount.InexactFloat64()
		totals["down_payment"] = d.DownPayment.InexactFloat64()
		totals["remaining_due"] = d.RemainingDue.InexactFloat64()
	}
	return totals
}
