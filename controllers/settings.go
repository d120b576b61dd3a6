package controllers

import (
	"net/http"
	"strings"

	"retail-backend/services"
	"retail-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SettingsController struct {
	settings *services.SettingsService
	log      *zap.Logger
}

func NewSettingsController(settings *services.SettingsService, log *zap.Logger) *SettingsController {
	return &SettingsController{settings: settings, log: log}
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	respondMessage(c, settings)
}

func (sc *SettingsController) UpdateSettings(c *gin.Context) {
	dict, err := FormDict(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if missing := missingParams(dict, "walk_in_customer", "store_name", "store_address"); len(missing) > 0 {
		utils.RespondWithError(c, http.StatusExpectationFailed, "Missing required arguments: "+strings.Join(missing, ", "))
		return
	}

	_, err = sc.settings.Update(c.Request.Context(), services.SettingsInput{
		WalkInCustomer: dict["walk_in_customer"],
		StoreName:      dict["store_name"],
		StoreAddress:   dict["store_address"],
	})
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	respondMessage(c, "Settings updated successfully")
}
