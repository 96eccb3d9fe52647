package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/smartshop/internal/pkg/errors"
)

// ErrorBody is the shape of every error response. ServerName identifies the
// deployment that produced it.
type ErrorBody struct {
	ServerName string `json:"serverName"`
	Error      string `json:"error"`
}

// Success writes data with 200. data is expected to carry its own serverName.
func Success(c *gin.Context, data interface{}) {
	if data == nil {
		data = struct{}{}
	}
	c.JSON(http.StatusOK, data)
}

// Error writes an error body with the given status
func Error(c *gin.Context, httpStatus int, serverName, message string) {
	c.JSON(httpStatus, ErrorBody{
		ServerName: serverName,
		Error:      message,
	})
}

// TooManyRequests 429, aborting the handler chain
func TooManyRequests(c *gin.Context, serverName string, details ...string) {
	ErrorWithCode(c, serverName, apperrors.ErrTooManyRequests, details...)
	c.Abort()
}

// HandleError maps an AppError to its status and public message
func HandleError(c *gin.Context, serverName string, err error) {
	if err == nil {
		return
	}

	_ = c.Error(err)
	Error(c, apperrors.ExtractStatus(err), serverName, apperrors.PublicMessage(err))
}

// ErrorWithCode writes the error registered for code
func ErrorWithCode(c *gin.Context, serverName string, code int, details ...string) {
	Error(c, apperrors.GetHTTPStatus(code), serverName, apperrors.FormatError(code, details...))
}
