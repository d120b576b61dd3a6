package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"retail-backend/config"
	"retail-backend/services"
	"retail-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const formDictKey = "formDict"

// FormDict merges query parameters, form fields and the top level keys of a
// JSON body into one map. Later sources win. JSON values that are not
// strings keep their raw JSON text, so a nested "data" object can be decoded
// by the handler.
func FormDict(c *gin.Context) (map[string]string, error) {
	if cached, ok := c.Get(formDictKey); ok {
		return cached.(map[string]string), nil
	}

	dict := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			dict[key] = values[0]
		}
	}

	switch c.ContentType() {
	case binding.MIMEJSON:
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		if len(bytes.TrimSpace(body)) > 0 {
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(body, &fields); err != nil {
				return nil, fmt.Errorf("invalid JSON body: %w", err)
			}
			for key, raw := range fields {
				dict[key] = rawString(raw)
			}
		}
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				dict[key] = values[0]
			}
		}
	}

	c.Set(formDictKey, dict)
	return dict, nil
}

func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}

// intParam reads an integer parameter, using def when it is absent.
func intParam(dict map[string]string, key string, def int) (int, error) {
	value, ok := dict[key]
	if !ok || value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid literal for %s: %q", key, value)
	}
	return n, nil
}

// missingParams lists the keys absent from dict.
func missingParams(dict map[string]string, keys ...string) []string {
	var missing []string
	for _, key := range keys {
		if _, ok := dict[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

// respondError maps a service error onto the framework style error body.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrAuthentication):
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid login credentials")
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusExpectationFailed, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	default:
		config.RequestLogger(c, log).Error("Request failed", zap.Error(err))
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

func respondMessage(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, gin.H{"message": payload})
}

func respondFailed(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"status": "failed", "error": err.Error()})
}
