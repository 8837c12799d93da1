// Package controller holds the Gin handlers. Controllers bind input, call
// one service method and translate the result; no business logic lives here.
package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageNo   = 0
	defaultPageSize = 10
)

// parseUintParam reads a numeric path parameter. The second return is false
// when the value is not a valid unsigned integer.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// pageParams reads pageNo/pageSize with the 0/10 defaults.
func pageParams(c *gin.Context) (int, int, bool) {
	pageNo := defaultPageNo
	pageSize := defaultPageSize

	if raw := c.Query("pageNo"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, 0, false
		}
		pageNo = n
	}
	if raw := c.Query("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return 0, 0, false
		}
		pageSize = n
	}
	return pageNo, pageSize, true
}

func parseFloatParam(c *gin.Context, name string) (float64, bool) {
	v, err := strconv.ParseFloat(c.Param(name), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloatQuery(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

func parseInt64Query(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
