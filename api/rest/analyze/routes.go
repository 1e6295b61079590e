package analyze

import (
	"codeberg.org/papergen/server/internal/analysis"
	"github.com/gin-gonic/gin"
)

// registers the analysis route. every method is routed so that
// non-POST requests get a 405 body instead of a 404
func RegisterRoutes(router *gin.RouterGroup, analyzer analysis.Analyzer) {
	router.Any("/analyze", Handler(analyzer))
}
