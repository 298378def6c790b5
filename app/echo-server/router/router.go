package router

import (
	"net/http"

	"crimeChronicles/internal/rest"
	"crimeChronicles/pkg/metrics"

	"github.com/labstack/echo/v4"
)

func SetupCaseRoutes(api *echo.Group, handler *rest.CaseHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	cases := api.Group("/cases")

	cases.GET("", handler.ListCases)
	cases.GET("/featured", handler.GetFeatured)
	cases.GET("/:id", handler.GetCase)
	cases.GET("/:id/similar", handler.GetSimilar)
	cases.POST("", handler.CreateCase, authRequired, adminOnly)
	cases.PUT("/:id", handler.UpdateCase, authRequired, adminOnly)
	cases.DELETE("/:id", handler.DeleteCase, authRequired, adminOnly)

	api.GET("/search", handler.Search)
}

func SetupHistoryRoutes(api *echo.Group, handler *rest.HistoryHandler, authRequired echo.MiddlewareFunc) {
	me := api.Group("/users/me", authRequired)
	me.GET("/history", handler.ListHistory)
	me.POST("/history", handler.RecordProgress)
}

func SetupFavoriteRoutes(api *echo.Group, handler *rest.FavoriteHandler, authRequired echo.MiddlewareFunc) {
	favorites := api.Group("/users/me/favorites", authRequired)
	favorites.GET("", handler.ListFavorites)
	favorites.POST("", handler.AddFavorite)
	favorites.DELETE("/:caseId", handler.RemoveFavorite)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories")

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategoryByID)
	categories.POST("", handler.CreateCategory, authRequired, adminOnly)
	categories.PUT("/:id", handler.UpdateCategory, authRequired, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, authRequired, adminOnly)
	categories.PUT("/:id/cases/:caseId", handler.AddCase, authRequired, adminOnly)
	categories.DELETE("/:id/cases/:caseId", handler.RemoveCase, authRequired, adminOnly)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/users/me/recommendations", authRequired)
	reco.GET("", handler.Recommend)
	reco.GET("/debug", handler.Debug)
	reco.GET("/profile", handler.Profile)
}

func SetupRecommendationAdminRoutes(api *echo.Group, handler *rest.RecommendationAdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/recommendations", authRequired, adminOnly)
	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpsertConfig)
}

func SetupOpsRoutes(e *echo.Echo, appName, version string) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "ok",
			"app":     appName,
			"version": version,
		})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
}
