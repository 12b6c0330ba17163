package routes

import (
	"github.com/gin-gonic/gin"

	"catalog-admin/internal/auth"
	"catalog-admin/internal/handlers"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Brands   *handlers.BrandHandler
	Products *handlers.ProductHandler
	Orders   *handlers.OrderHandler
}

// Register wires the dashboard surface. Everything except login sits
// behind an active session.
func Register(router *gin.Engine, a auth.Authenticator, h Handlers) {
	v1 := router.Group("/v1")

	v1.POST("/auth/login", h.Auth.Login)

	secured := v1.Group("")
	secured.Use(auth.RequireSession(a))
	{
		secured.POST("/auth/logout", h.Auth.Logout)

		brands := secured.Group("/brands")
		{
			brands.GET("", h.Brands.List)
			brands.GET("/stream", h.Brands.Stream)
			brands.POST("/editor", h.Brands.Open)
			brands.PUT("/editor/:eid", h.Brands.UpdateBuffer)
			brands.POST("/editor/:eid/submit", h.Brands.Submit)
			brands.DELETE("/editor/:eid", h.Brands.Cancel)
			brands.POST("/deletions", h.Brands.RequestDelete)
			brands.POST("/deletions/:token/confirm", h.Brands.ConfirmDelete)
			brands.DELETE("/deletions/:token", h.Brands.CancelDelete)
		}

		products := secured.Group("/products")
		{
			products.GET("", h.Products.List)
			products.GET("/stream", h.Products.Stream)
			products.GET("/markets", h.Products.Markets)
			products.POST("/editor", h.Products.Open)
			products.PUT("/editor/:eid", h.Products.UpdateBuffer)
			products.POST("/editor/:eid/submit", h.Products.Submit)
			products.DELETE("/editor/:eid", h.Products.Cancel)

			products.POST("/editor/:eid/extra", h.Products.AddExtra)
			products.PUT("/editor/:eid/extra/:idx", h.Products.UpdateExtra)
			products.DELETE("/editor/:eid/extra/:idx", h.Products.RemoveExtra)

			products.POST("/editor/:eid/variants", h.Products.AddVariant)
			products.PUT("/editor/:eid/variants/:idx", h.Products.UpdateVariant)
			products.DELETE("/editor/:eid/variants/:idx", h.Products.RemoveVariant)

			products.POST("/editor/:eid/variants/:idx/extra", h.Products.AddVariantExtra)
			products.PUT("/editor/:eid/variants/:idx/extra/:ridx", h.Products.UpdateVariantExtra)
			products.DELETE("/editor/:eid/variants/:idx/extra/:ridx", h.Products.RemoveVariantExtra)

			products.POST("/deletions", h.Products.RequestDelete)
			products.POST("/deletions/:token/confirm", h.Products.ConfirmDelete)
			products.DELETE("/deletions/:token", h.Products.CancelDelete)
		}

		ordersGroup := secured.Group("/orders")
		{
			ordersGroup.GET("", h.Orders.List)
			ordersGroup.GET("/stream", h.Orders.Stream)
			ordersGroup.GET("/detail/:id", h.Orders.Detail)
		}
	}
}
