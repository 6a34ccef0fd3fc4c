package backend

import (
	"bytes"
	"log"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewServerWithErrorLog(t *testing.T) {
	var buf bytes.Buffer
	errLog := log.New(&buf, "", 0)

	s := NewServer("127.0.0.1:0", http.NotFoundHandler(), nil, WithErrorLog(errLog))

	assert.Same(t, errLog, s.server.ErrorLog)
	assert.Equal(t, DefaultShutdownTimeout, s.shutdownTimeout)
}
