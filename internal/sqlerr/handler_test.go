package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/product-catalog/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		TableName:      "products",
		ConstraintName: "products_sku_key",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("save: %w", pgErr)))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PRODUCT_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Product with this Sku already exists", httpErr.Message)
	assert.True(t, httpErr.Override)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		Severity:   "ERROR",
		TableName:  "products",
		ColumnName: "unit_price",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, "PRODUCT_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Unit Price is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "unit_price", httpErr.Errors[0].Field)
}

func TestHandleErrorNumericOutOfRange(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "22003", TableName: "products"}))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PRODUCT_INVALID", httpErr.Code)
}

func TestHandleErrorUnknownPgError(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "XX000"}))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestHandleErrorNoRows(t *testing.T) {
	for _, err := range []error{gorm.ErrRecordNotFound, sql.ErrNoRows, fmt.Errorf("wrapped: %w", gorm.ErrRecordNotFound)} {
		httpErr := asHTTPError(t, HandleError(err))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	}
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("gone", false, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleErrorUnknown(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("99999"))
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23503", Severity: "ERROR"})
	assert.Equal(t, ForeignKeyViolation, ErrCode(fmt.Errorf("insert: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(converted, &pgErr), "Error unwraps to the driver error")
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "sku", extractColumnForUniqueViolation("unique_products_sku"))
	assert.Equal(t, "sku", extractColumnForUniqueViolation("products_sku_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_products"))
}
