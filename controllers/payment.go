package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"retail-backend/services"
	"retail-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	payments *services.PaymentService
	errorLog *services.ErrorLogService
}

func NewPaymentController(payments *services.PaymentService, errorLog *services.ErrorLogService) *PaymentController {
	return &PaymentController{payments: payments, errorLog: errorLog}
}

func (pc *PaymentController) MakeCustomerPaymentEntry(c *gin.Context) {
	dict, err := FormDict(c)
	if err != nil {
		pc.fail(c, err)
		return
	}
	data := dict["data"]
	if data == "" {
		c.JSON(http.StatusOK, gin.H{"message": gin.H{"status": "failed", "error": "No data provided"}})
		return
	}

	input, err := services.DecodePayment(data)
	if err != nil {
		pc.fail(c, err)
		return
	}
	entry, err := pc.payments.Create(c.Request.Context(), input, utils.CurrentUser(c))
	if err != nil {
		pc.fail(c, err)
		return
	}

	respondMessage(c, gin.H{
		"status":  "success",
		"message": fmt.Sprintf("Payment Entry %s created successfully", entry.Name),
	})
}

func (pc *PaymentController) fail(c *gin.Context, err error) {
	if !errors.Is(err, services.ErrRequiredFields) {
		pc.errorLog.Record(c.Request.Context(), "Payment Entry Creation Error", c.FullPath(), err)
	}
	respondMessage(c, gin.H{"status": "failed", "error": err.Error()})
}
