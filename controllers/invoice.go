package controllers

import (
	"net/http"

	"retail-backend/services"
	"retail-backend/utils"

	"github.com/gin-gonic/gin"
)

type InvoiceController struct {
	invoices *services.InvoiceService
	errorLog *services.ErrorLogService
}

func NewInvoiceController(invoices *services.InvoiceService, errorLog *services.ErrorLogService) *InvoiceController {
	return &InvoiceController{invoices: invoices, errorLog: errorLog}
}

// CreateSalesInvoice answers 200 in every case; failures are reported in an
// "error" field inside the message.
func (ic *InvoiceController) CreateSalesInvoice(c *gin.Context) {
	dict, err := FormDict(c)
	if err != nil {
		ic.fail(c, err)
		return
	}
	data := dict["data"]
	if data == "" {
		respondMessage(c, gin.H{"error": "No data provided"})
		return
	}

	input, err := services.DecodeSalesInvoice(data)
	if err != nil {
		ic.fail(c, err)
		return
	}
	invoice, err := ic.invoices.Create(c.Request.Context(), input, utils.CurrentUser(c))
	if err != nil {
		ic.fail(c, err)
		return
	}

	respondMessage(c, gin.H{
		"message":      "Sales Invoice created successfully",
		"invoice_name": invoice.Name,
	})
}

func (ic *InvoiceController) fail(c *gin.Context, err error) {
	ic.errorLog.Record(c.Request.Context(), "Sales Invoice Creation Error", c.FullPath(), err)
	respondMessage(c, gin.H{"error": err.Error()})
}

func (ic *InvoiceController) GetSalesInvoices(c *gin.Context) {
	page, err := ic.listInvoices(c)
	if err != nil {
		ic.errorLog.Record(c.Request.Context(), "Sales Invoice Fetch Error", c.FullPath(), err)
		respondFailed(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ic *InvoiceController) listInvoices(c *gin.Context) (*services.InvoicePage, error) {
	dict, err := FormDict(c)
	if err != nil {
		return nil, err
	}
	page, err := intParam(dict, "page", 1)
	if err != nil {
		return nil, err
	}
	perPage, err := intParam(dict, "per_page", 20)
	if err != nil {
		return nil, err
	}

	return ic.invoices.List(c.Request.Context(), services.InvoiceQuery{
		Page:        page,
		PerPage:     perPage,
		Customer:    dict["customer"],
		StartDate:   dict["start_date"],
		EndDate:     dict["end_date"],
		InvoiceName: dict["invoice_name"],
	})
}
