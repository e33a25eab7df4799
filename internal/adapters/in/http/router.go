package http

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"dispatch/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const BaseURL = "/api/v1"

// apiDoc feeds the OpenAPI document to the swagger UI.
type apiDoc string

func (d apiDoc) ReadDoc() string { return string(d) }

var registerDoc sync.Once

// NewRouter mounts the API under BaseURL next to /health, /metrics,
// /openapi.json and the swagger UI on /swagger/*.
func NewRouter(server *Server, doc *openapi3.T) (*echo.Echo, error) {
	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi document: %w", err)
	}
	registerDoc.Do(func() {
		swag.Register(swag.Name, apiDoc(docJSON))
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlersWithBaseURL(e, server, BaseURL)

	return e, nil
}

// errorHandler renders errors that never reached a use case, such as
// malformed path parameters or unknown routes, as servers.Error.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := internalMessage

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}

	_ = c.JSON(code, servers.Error{Code: code, Message: message})
}
