package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type checkoutInput struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Phone   string `json:"phone"   validate:"required,min=5,regex=^[+]?[0-9 ()-]+$"`
	Email   string `json:"email"   validate:"nullable,email"`
	Address string `json:"address" validate:"required,min=5"`
	Payment string `json:"payment" validate:"required,in=cash,card,transfer"`
}

func TestStruct_Valid(t *testing.T) {
	errs := Struct(&checkoutInput{
		Name:    "Анна",
		Phone:   "+7 999 123-45-67",
		Email:   "anna@example.com",
		Address: "Москва, ул. Ленина 1",
		Payment: "cash",
	})
	assert.Empty(t, errs)
}

func TestStruct_FieldRules(t *testing.T) {
	tests := []struct {
		name      string
		input     checkoutInput
		wantField string
	}{
		{
			name:      "name too short",
			input:     checkoutInput{Name: "A", Phone: "+79991234567", Address: "Tverskaya 10", Payment: "cash"},
			wantField: "name",
		},
		{
			name:      "phone with letters",
			input:     checkoutInput{Name: "Anna", Phone: "abc", Address: "Tverskaya 10", Payment: "cash"},
			wantField: "phone",
		},
		{
			name:      "address too short",
			input:     checkoutInput{Name: "Anna", Phone: "+79991234567", Address: "abc", Payment: "cash"},
			wantField: "address",
		},
		{
			name:      "unknown payment method",
			input:     checkoutInput{Name: "Anna", Phone: "+79991234567", Address: "Tverskaya 10", Payment: "bitcoin"},
			wantField: "payment",
		},
		{
			name:      "bad optional email",
			input:     checkoutInput{Name: "Anna", Phone: "+79991234567", Email: "nope", Address: "Tverskaya 10", Payment: "cash"},
			wantField: "email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Struct(&tt.input)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestStruct_NullableSkipsEmpty(t *testing.T) {
	errs := Struct(&checkoutInput{
		Name:    "Anna",
		Phone:   "+79991234567",
		Email:   "", // nullable: empty must pass
		Address: "Tverskaya 10",
		Payment: "card",
	})
	assert.Empty(t, errs)
}

func TestStruct_InParamKeepsCommaValues(t *testing.T) {
	rules := splitRules("required,in=cash,card,transfer,max=20")
	assert.Equal(t, []string{"required", "in=cash,card,transfer", "max=20"}, rules)
}

func TestStruct_TwoCharNameAccepted(t *testing.T) {
	errs := Struct(&checkoutInput{
		Name:    "Al",
		Phone:   "+79991234567",
		Address: "Tverskaya 10",
		Payment: "cash",
	})
	assert.NotContains(t, errs, "name")
}
