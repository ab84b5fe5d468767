package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wreathworks/internal/domain"
	cartsvc "wreathworks/internal/service/cart"
	ordersvc "wreathworks/internal/service/order"
	"wreathworks/internal/validation"
)

// apiError is the error half of the {success, data|error, retryable}
// envelope every mutation endpoint returns.
type apiError struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Issues  []validation.Issue `json:"issues,omitempty"`
}

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// respondError maps service errors onto the envelope. Conflicts are marked
// retryable so clients can re-issue the request.
func respondError(c *gin.Context, err error) {
	var vErr *cartsvc.ValidationError
	var iErr *ordersvc.IntegrityError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":   false,
			"retryable": false,
			"error": apiError{
				Code:    "validationFailed",
				Message: vErr.Error(),
				Issues:  vErr.Result.Errors,
			},
		})
	case errors.As(err, &iErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":   false,
			"retryable": false,
			"error":     apiError{Code: "integrityFailed", Message: iErr.Error()},
		})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{
			"success":   false,
			"retryable": true,
			"error":     apiError{Code: "conflict", Message: "concurrent write, please retry"},
		})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, cartsvc.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"success":   false,
			"retryable": false,
			"error":     apiError{Code: "notFound", Message: err.Error()},
		})
	case errors.Is(err, ordersvc.ErrEmptyCart), errors.Is(err, ordersvc.ErrTermsNotAccepted):
		c.JSON(http.StatusBadRequest, gin.H{
			"success":   false,
			"retryable": false,
			"error":     apiError{Code: "badRequest", Message: err.Error()},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":   false,
			"retryable": false,
			"error":     apiError{Code: "internal", Message: "internal error"},
		})
	}
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success":   false,
		"retryable": false,
		"error":     apiError{Code: "badRequest", Message: msg},
	})
}
