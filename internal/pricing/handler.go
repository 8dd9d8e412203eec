package pricing

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type PlansResponse struct {
	Plans     map[string]Plan `json:"plans"`
	Order     []string        `json:"order"`
	Timestamp string          `json:"timestamp"`
}

// ListPlans godoc
// @Summary      Pricing plans
// @Description  Static catalog of STCoin packages.
// @Tags         pricing
// @Produce      json
// @Success      200  {object}  PlansResponse
// @Router       /api/v1/pricing/plans [get]
func ListPlans(c *gin.Context) {
	plans := Plans()
	resp := PlansResponse{
		Plans:     make(map[string]Plan, len(plans)),
		Order:     make([]string, 0, len(plans)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	for _, p := range plans {
		resp.Plans[p.ID] = p
		resp.Order = append(resp.Order, p.ID)
	}

	c.JSON(http.StatusOK, resp)
}
