package request

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
)

const maxBodySize = 1 << 20

var ErrInvalidBody = errors.New("invalid request data")

// Values reads the fields of a POST body sent either as an HTML form or as a
// flat JSON object of strings.
func Values(rw http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(rw, r.Body, maxBodySize)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		fields := make(map[string]string)
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return nil, ErrInvalidBody
		}
		values := make(url.Values, len(fields))
		for k, v := range fields {
			values.Set(k, v)
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, ErrInvalidBody
	}
	return r.PostForm, nil
}
