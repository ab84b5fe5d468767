package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wreathworks/internal/domain"
	cartsvc "wreathworks/internal/service/cart"
)

type quoteRequest struct {
	Customizations []cartsvc.CustomizationInput `json:"customizations"`
	Quantity       int                          `json:"quantity"`
}

func quoteHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req quoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
		if req.Quantity < 1 {
			req.Quantity = 1
		}
		result, err := svc.Quote(c.Request.Context(), c.Param("id"), req.Customizations, req.Quantity, locale(c))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, result)
	}
}

type cartView struct {
	Items      []domain.CartItem `json:"items"`
	TotalCents int64             `json:"totalCents"`
}

func getCartHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionID(c)
		if session == "" {
			respondBadRequest(c, "X-Session-ID header required")
			return
		}
		items, err := svc.List(c.Request.Context(), session)
		if err != nil {
			respondError(c, err)
			return
		}
		view := cartView{Items: items}
		if view.Items == nil {
			view.Items = []domain.CartItem{}
		}
		for _, item := range items {
			view.TotalCents += item.TotalPriceCents
		}
		respondData(c, http.StatusOK, view)
	}
}

func createCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionID(c)
		if session == "" {
			respondBadRequest(c, "X-Session-ID header required")
			return
		}
		var req cartsvc.CreateItemInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
		req.Locale = locale(c)
		item, err := svc.CreateItem(c.Request.Context(), session, customerID(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusCreated, item)
	}
}

func updateCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionID(c)
		if session == "" {
			respondBadRequest(c, "X-Session-ID header required")
			return
		}
		var req cartsvc.UpdateItemInput
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
		req.Locale = locale(c)
		item, err := svc.UpdateItem(c.Request.Context(), session, c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, item)
	}
}

func deleteCartItemHandler(svc *cartsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionID(c)
		if session == "" {
			respondBadRequest(c, "X-Session-ID header required")
			return
		}
		if err := svc.DeleteItem(c.Request.Context(), session, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, gin.H{"deleted": true})
	}
}
