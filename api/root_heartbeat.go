package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat answers liveness probes with an empty 200. It is
// registered as a HEAD route, which the request logger skips.
func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
