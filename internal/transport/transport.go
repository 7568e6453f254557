package transport

import (
	"net/http"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/transport/middleware"
	"github.com/ds124wfegd/WB_L3/webpconverter/internal/web"
	"github.com/gin-gonic/gin"
)

func InitRoutes(h *ConversionHandler) (*gin.Engine, error) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", h.Index)
	router.POST("/convert", h.Convert)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "webp-converter",
		})
	})
	return router, nil
}
