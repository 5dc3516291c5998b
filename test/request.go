package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/easyfinances/backend/internal/config"
	"github.com/easyfinances/backend/internal/router"
	"github.com/stretchr/testify/assert"
)

// TOLERANCE is the duration that a CreatedAt or UpdatedAt time.Time
// is allowed to differ from the time at which it is checked.
const TOLERANCE = time.Minute

// Config returns the configuration the router is built with in tests.
func Config() config.Config {
	u, _ := url.Parse("http://example.com")

	return config.Config{
		APIURL:    u,
		GinMode:   "debug",
		LogFormat: "human",
		JWTSecret: Secret,
	}
}

// Request is a helper method to simplify making a HTTP request for tests.
//
// Requests are authenticated as UserID unless the headers set Authorization.
// An empty Authorization header sends the request unauthenticated.
func Request(t *testing.T, method, url string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteStr []byte
	var err error

	// If the body is a string, convert it to bytes
	if reflect.TypeOf(body).Kind() == reflect.String {
		byteStr = []byte(body.(string))
	} else {
		byteStr, err = json.Marshal(body)
		if err != nil {
			assert.FailNow(t, "Request body could not be marshalled from object input", err)
		}
	}

	r, teardown, err := router.Config(Config())
	if err != nil {
		assert.FailNow(t, "Router could not be initialized")
	}
	defer teardown()

	router.AttachRoutes(r.Group("/"), Config())

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(byteStr))
	req.Header.Set("Authorization", "Bearer "+Token(t, UserID))

	for _, headerMap := range headers {
		for header, value := range headerMap {
			if value == "" {
				req.Header.Del(header)
				continue
			}
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// AssertHTTPStatus asserts that the response has one of the expected status codes.
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	assert.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Response body: %s", r.Body.String())
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.NewDecoder(r.Body).Decode(target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v'", r.Body, reflect.TypeOf(target), err)
	}
}

// DecodeError returns the error message of an error response body.
func DecodeError(t *testing.T, s []byte) string {
	var r struct {
		Error string `json:"error"`
	}

	if err := json.Unmarshal(s, &r); err != nil {
		assert.Fail(t, "Not valid JSON!", "%s", s)
	}

	return r.Error
}
