package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	valid := []string{"(11) 91234-5678", "(21) 3456-7890"}
	invalid := []string{"", "11 91234-5678", "(11)91234-5678", "(1) 91234-5678", "(11) 912345-678", "(11) 123-4567", "(11) 91234-5678 "}

	for _, p := range valid {
		assert.True(t, ValidatePhone(p), p)
	}
	for _, p := range invalid {
		assert.False(t, ValidatePhone(p), p)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("ana@x.com"))
	assert.False(t, ValidateEmail("ana"))
	assert.False(t, ValidateEmail(""))
}

type sampleRequest struct {
	Name   string   `json:"name" validate:"notblank"`
	Email  string   `json:"email" validate:"required,email"`
	Phone  string   `json:"phone" validate:"required,phone"`
	Amount *float64 `json:"amount" validate:"required,gt=0"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	zero := 0.0
	errs := ValidateStruct(sampleRequest{Name: "  ", Email: "nope", Phone: "123", Amount: &zero})
	require.Len(t, errs, 4)

	byField := map[string]FieldError{}
	for _, e := range errs {
		byField[e.Field] = e
	}
	assert.Equal(t, "notblank", byField["name"].Type)
	assert.Equal(t, "email", byField["email"].Type)
	assert.Equal(t, "phone", byField["phone"].Type)
	assert.Equal(t, "gt", byField["amount"].Type)
}

func TestValidateStructAcceptsValidRequest(t *testing.T) {
	amount := 10.5
	errs := ValidateStruct(sampleRequest{Name: "Ana", Email: "ana@x.com", Phone: "(11) 91234-5678", Amount: &amount})
	assert.Nil(t, errs)
}
