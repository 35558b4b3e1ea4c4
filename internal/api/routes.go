package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"honestspace/server/internal/auth"
	"honestspace/server/internal/models"
)

// OptionalAuth loads the account when a valid bearer token is present and
// continues anonymously otherwise. Public routes use it so responses can
// include viewer-specific fields like is_loved.
func (h *Handler) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		claims, err := h.jwt.ValidateToken(strings.TrimPrefix(header, "Bearer "), auth.TokenKindAccess)
		if err != nil {
			c.Next()
			return
		}
		userID, err := auth.UserIDFromClaims(claims)
		if err != nil {
			c.Next()
			return
		}
		if user, err := h.db.GetUserByID(userID); err == nil && user.CanAuthenticate() {
			c.Set(contextUserKey, user)
		}
		c.Next()
	}
}

// SetupRoutes wires the full route table onto the router.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")

	accounts := api.Group("/accounts")
	{
		accounts.POST("/register", handler.Register)
		authenticated := accounts.Group("", handler.RequireAuth())
		authenticated.GET("/profile", handler.GetProfile)
		authenticated.PUT("/profile", handler.UpdateProfile)
	}

	jwt := api.Group("/auth/jwt")
	{
		jwt.POST("/create", handler.CreateToken)
		jwt.POST("/refresh", handler.RefreshToken)
		jwt.POST("/blacklist", handler.BlacklistToken)
	}

	core := api.Group("/core")
	{
		core.GET("/countries", handler.ListCountries)
		core.GET("/counties", handler.ListCounties)
		core.GET("/cities", handler.ListCities)
		core.GET("/neighborhoods", handler.ListNeighborhoods)
		core.GET("/neighborhoods/:id", handler.GetNeighborhood)
		core.GET("/amenities", handler.ListAmenities)
		core.GET("/amenity-categories", handler.ListAmenityCategories)
		core.GET("/property-types", handler.ListPropertyTypes)
		core.GET("/trust-badges", handler.ListTrustBadges)
		core.GET("/rating-categories", handler.ListRatingCategories)
		core.GET("/landmarks", handler.ListLandmarks)
		core.GET("/landmark-types", handler.ListLandmarkTypes)

		admin := core.Group("", handler.RequireAuth(), handler.RequireRole(models.RoleAdmin))
		admin.POST("/neighborhoods", handler.CreateNeighborhood)
		admin.DELETE("/countries/:id", handler.DeleteCountry)
	}

	properties := api.Group("/properties")
	{
		properties.GET("", handler.SearchProperties)
		properties.GET("/:id", handler.OptionalAuth(), handler.GetProperty)
		properties.GET("/:id/reviews", handler.ListReviews)

		landlord := properties.Group("", handler.RequireAuth(), handler.RequireRole(models.RoleLandlord))
		landlord.POST("", handler.CreateListing)
		landlord.PUT("/:id", handler.UpdateListing)
		landlord.DELETE("/:id", handler.DeleteListing)
		landlord.POST("/:id/landmarks", handler.AttachLandmark)
		landlord.GET("/:id/analytics", handler.GetAnalytics)
		landlord.GET("/:id/inquiries", handler.ListPropertyInquiries)

		authenticated := properties.Group("", handler.RequireAuth())
		authenticated.POST("/:id/status", handler.TransitionStatus)
		authenticated.POST("/:id/love", handler.LoveProperty)
		authenticated.DELETE("/:id/love", handler.UnloveProperty)
		authenticated.POST("/:id/reviews", handler.RequireRole(models.RoleTenant), handler.CreateReview)
		authenticated.POST("/:id/inquiries", handler.RequireRole(models.RoleTenant), handler.CreateInquiry)
	}

	me := api.Group("/me", handler.RequireAuth())
	{
		me.GET("/properties", handler.RequireRole(models.RoleLandlord), handler.ListMyProperties)
		me.GET("/favorites", handler.ListLovedProperties)
		me.GET("/inquiries", handler.ListInquiries)
	}

	inquiries := api.Group("/inquiries", handler.RequireAuth())
	{
		inquiries.POST("/:id/status", handler.TransitionInquiry)
		inquiries.POST("/:id/viewings", handler.ScheduleViewing)
	}

	viewings := api.Group("/viewings", handler.RequireAuth())
	{
		viewings.POST("/:id/confirm", handler.ConfirmViewing)
		viewings.POST("/:id/status", handler.TransitionViewing)
	}
}
