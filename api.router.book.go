package main

import (
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/jeamon/library-api/docs"
)

// SetupBookRoutes injects the library inventory api endpoints. Search,
// statistics and the filtered listings live outside the /v1/books/:isbn
// subtree to keep the router free of static versus parameter conflicts.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/", m.public.Chain(api.Index))
	router.GET("/status", m.public.Chain(api.Status))

	router.POST("/v1/books", m.public.Chain(api.AddBook))
	router.POST("/v1/books/manual", m.public.Chain(api.AddBookManually))
	router.GET("/v1/books", m.public.Chain(api.GetAllBooks))
	router.GET("/v1/books/:isbn", m.public.Chain(api.GetOneBook))
	router.PUT("/v1/books/:isbn", m.public.Chain(api.UpdateBook))
	router.DELETE("/v1/books/:isbn", m.public.Chain(api.DeleteOneBook))
	router.PUT("/v1/books/:isbn/status", m.public.Chain(api.UpdateReadingStatus))

	router.GET("/v1/search", m.public.Chain(api.SearchBooks))
	router.GET("/v1/statistics", m.public.Chain(api.GetReadingStatistics))
	router.GET("/v1/authors/:author/books", m.public.Chain(api.GetBooksByAuthor))
	router.GET("/v1/categories/:category/books", m.public.Chain(api.GetBooksByCategory))
	router.GET("/v1/statuses/:status/books", m.public.Chain(api.GetBooksByStatus))

	router.GET("/swagger/*any", m.public.Chain(api.OpsHandlerWrapper(httpswagger.WrapHandler)))
	return router
}
