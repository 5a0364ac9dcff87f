package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// looseString accepts a JSON string or a bare JSON scalar (number, bool) and
// keeps its text. Form values bind to it as plain strings.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
		return nil
	}
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return errors.New("expected a string or number")
	}
	*s = looseString(data)
	return nil
}

// bindBody binds a JSON or URL-encoded form body into obj. An empty body is
// treated as an empty object so that handlers report missing fields.
func bindBody(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
		return nil
	}
	err := c.ShouldBind(obj)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
