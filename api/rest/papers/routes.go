package papers

import (
	"github.com/gin-gonic/gin"
)

// registers the generation relay. all methods are routed so non-POST gets a 405 body
func RegisterRoutes(router *gin.RouterGroup, client Relayer, throttle Throttle) {
	router.Any("/generate_paper", GenerateHandler(client, throttle))
}
