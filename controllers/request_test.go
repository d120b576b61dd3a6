package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(method, target, contentType, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	return c
}

func TestFormDict(t *testing.T) {
	t.Run("query and form", func(t *testing.T) {
		c := testContext(http.MethodPost, "/x?page=2&customer=A", "application/x-www-form-urlencoded", "customer=B&data=%7B%7D")
		dict, err := FormDict(c)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"page": "2", "customer": "B", "data": "{}"}, dict)
	})

	t.Run("json body keeps nested values raw", func(t *testing.T) {
		c := testContext(http.MethodPost, "/x", "application/json", `{"data":{"customer":"A"},"page":3,"name":"x","empty":null}`)
		dict, err := FormDict(c)
		require.NoError(t, err)
		assert.Equal(t, `{"customer":"A"}`, dict["data"])
		assert.Equal(t, "3", dict["page"])
		assert.Equal(t, "x", dict["name"])
		assert.Equal(t, "", dict["empty"])

		again, err := FormDict(c)
		require.NoError(t, err)
		assert.Equal(t, dict, again)
	})

	t.Run("malformed json", func(t *testing.T) {
		c := testContext(http.MethodPost, "/x", "application/json", `{"data":`)
		_, err := FormDict(c)
		assert.Error(t, err)
	})
}

func TestIntParam(t *testing.T) {
	dict := map[string]string{"page": "4", "blank": "", "bad": "two"}

	n, err := intParam(dict, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = intParam(dict, "blank", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = intParam(dict, "missing", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = intParam(dict, "bad", 1)
	assert.EqualError(t, err, `invalid literal for bad: "two"`)
}

func TestMissingParams(t *testing.T) {
	dict := map[string]string{"store_name": "", "walk_in_customer": "X"}
	assert.Equal(t, []string{"store_address"}, missingParams(dict, "walk_in_customer", "store_name", "store_address"))
	assert.Empty(t, missingParams(dict, "store_name"))
}
