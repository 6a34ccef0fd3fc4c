package backend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// respond writes the {success, message, <payload>} envelope every
// endpoint answers with.
func respond(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// internalError logs err on the request and hides it from the client.
func internalError(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, message)
}

// apiError carries a client-facing status and message out of a
// transaction.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

// failWith answers with err's status and message when it is an *apiError,
// and with a 500 carrying message otherwise.
func failWith(c *gin.Context, message string, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		fail(c, ae.status, ae.message)
		return
	}
	internalError(c, message, err)
}
