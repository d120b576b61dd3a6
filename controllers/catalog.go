package controllers

import (
	"net/http"

	"retail-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogController struct {
	catalog *services.CatalogService
	log     *zap.Logger
}

func NewCatalogController(catalog *services.CatalogService, log *zap.Logger) *CatalogController {
	return &CatalogController{catalog: catalog, log: log}
}

func (cc *CatalogController) GetItemPrices(c *gin.Context) {
	prices, err := cc.catalog.ItemPrices(c.Request.Context())
	if err != nil {
		respondError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, prices)
}

func (cc *CatalogController) GetItems(c *gin.Context) {
	items, err := cc.catalog.Items(c.Request.Context())
	if err != nil {
		respondError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
