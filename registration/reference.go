package registration

import (
	"net/http"

	"clubreg-backend/subscriptions"

	"github.com/gin-gonic/gin"
)

type genderOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type planTypeOption struct {
	Type   string `json:"type"`
	Months int    `json:"months"`
}

// RegisterReferenceRoutes serves the static option lists form clients render.
func RegisterReferenceRoutes(r *gin.Engine) {
	r.GET("/genders", func(c *gin.Context) {
		c.JSON(http.StatusOK, []genderOption{
			{Value: "male", Label: "Male"},
			{Value: "female", Label: "Female"},
		})
	})
	r.GET("/plan-types", func(c *gin.Context) {
		c.JSON(http.StatusOK, []planTypeOption{
			{Type: subscriptions.TypeYearly, Months: 12},
			{Type: subscriptions.TypeHalfYear, Months: 6},
			{Type: subscriptions.TypeQuarter, Months: 3},
			{Type: subscriptions.TypeMonth, Months: 1},
		})
	})
}
