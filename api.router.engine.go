package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupEngineRoutes injects the generic commands processing endpoints.
func (api *APIHandler) SetupEngineRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.POST("/v1/login", m.public(api.Login))
	router.POST("/v1/commands", m.public(api.ExecuteCommands))
	return router
}
