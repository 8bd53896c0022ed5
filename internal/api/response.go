package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API answer. Code is 0 on success and
// -1 on failure.
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// Success writes a 200 envelope around data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: "success", Data: data})
}

// Fail writes a failure envelope with the given HTTP status. data may carry
// details such as notices and is omitted when nil.
func Fail(c *gin.Context, status int, msg string, data interface{}) {
	c.AbortWithStatusJSON(status, Response{Code: -1, Msg: msg, Data: data})
}
