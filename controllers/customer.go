package controllers

import (
	"net/http"

	"retail-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomerController struct {
	customers *services.CustomerService
	errorLog  *services.ErrorLogService
	log       *zap.Logger
}

func NewCustomerController(customers *services.CustomerService, errorLog *services.ErrorLogService, log *zap.Logger) *CustomerController {
	return &CustomerController{customers: customers, errorLog: errorLog, log: log}
}

func (cc *CustomerController) GetCustomers(c *gin.Context) {
	customers, err := cc.customers.Customers(c.Request.Context())
	if err != nil {
		respondError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// GetCustomersWithBalances pages through customers with open invoices.
// Failures are reported as a 500 with a failed status body.
func (cc *CustomerController) GetCustomersWithBalances(c *gin.Context) {
	page, err := cc.customersWithBalances(c)
	if err != nil {
		cc.errorLog.Record(c.Request.Context(), "Get Customers with Balances Error", c.FullPath(), err)
		respondFailed(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    "Customers with balances retrieved successfully",
		"customers":  page.Customers,
		"pagination": page.Pagination,
	})
}

func (cc *CustomerController) customersWithBalances(c *gin.Context) (*services.CustomerBalancePage, error) {
	dict, err := FormDict(c)
	if err != nil {
		return nil, err
	}
	pageLength, err := intParam(dict, "page_length", 20)
	if err != nil {
		return nil, err
	}
	pageNumber, err := intParam(dict, "page_number", 1)
	if err != nil {
		return nil, err
	}
	return cc.customers.CustomersWithBalances(c.Request.Context(), pageNumber, pageLength)
}
