package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"wreathworks/internal/domain"
)

type catalogReader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetCustomizationOptions(ctx context.Context, productID string) ([]domain.CustomizationOption, error)
}

func listProductsHandler(catalog catalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListProducts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		respondData(c, http.StatusOK, products)
	}
}

func getProductHandler(catalog catalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		respondData(c, http.StatusOK, product)
	}
}

func getOptionsHandler(catalog catalogReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		options, err := catalog.GetCustomizationOptions(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if options == nil {
			options = []domain.CustomizationOption{}
		}
		respondData(c, http.StatusOK, options)
	}
}
