package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wreathworks/internal/domain"
	ordersvc "wreathworks/internal/service/order"
)

type createOrderRequest struct {
	ItemIDs       []string            `json:"itemIds"`
	CustomerInfo  domain.CustomerInfo `json:"customerInfo" binding:"required"`
	DeliveryInfo  domain.DeliveryInfo `json:"deliveryInfo" binding:"required"`
	PaymentMethod string              `json:"paymentMethod" binding:"required"`
	AgreeToTerms  bool                `json:"agreeToTerms"`
}

type createOrderResponse struct {
	Order       *domain.Order             `json:"order"`
	CartCleanup ordersvc.CartCleanup      `json:"cartCleanup"`
	Integrity   []ordersvc.IntegrityIssue `json:"integrityIssues,omitempty"`
}

func createOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionID(c)
		if session == "" {
			respondBadRequest(c, "X-Session-ID header required")
			return
		}
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
		result, err := svc.CreateOrder(c.Request.Context(), ordersvc.CreateOrderInput{
			SessionID:     session,
			ItemIDs:       req.ItemIDs,
			CustomerInfo:  req.CustomerInfo,
			DeliveryInfo:  req.DeliveryInfo,
			PaymentMethod: req.PaymentMethod,
			AgreeToTerms:  req.AgreeToTerms,
			Locale:        locale(c),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, createOrderResponse{
			Order:       result.Order,
			CartCleanup: result.CartCleanup,
			Integrity:   result.IntegrityIssues,
		})
	}
}
