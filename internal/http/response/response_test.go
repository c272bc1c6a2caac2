package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"id": 1})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something failed")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something failed", resp.Error)
}

func TestValidationError(t *testing.T) {
	type req struct {
		Title  string  `validate:"required"`
		Amount float64 `validate:"required,gt=0"`
	}

	v := validator.New()
	err := v.Struct(req{})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Title is a required field")
	assert.Contains(t, resp.Error, "field Amount is a required field")
}
