package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/jasmine-step/errors"
)

func respondError(c *gin.Context, err error) {
	status, body := errors.Respond(err)
	c.JSON(status, body)
}
