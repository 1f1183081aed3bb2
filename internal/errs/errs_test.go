package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestNewBadRequestError(t *testing.T) {
	err := NewBadRequestError("bad", false, nil, nil)
	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)

	code := "PRODUCT_INVALID"
	err = NewBadRequestError("bad", true, &code, []FieldError{{Field: "price", Error: "is required"}})
	assert.Equal(t, code, err.Code)
	assert.True(t, err.Override)
	assert.Len(t, err.Errors, 1)
}

func TestHTTPErrorMatchesByType(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewNotFoundError("gone", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "gone", httpErr.Error())
}
