package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	Name     string  `json:"name" validate:"required,min=2,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"nullable,in=USER,ADMIN"`
	Price    float64 `json:"price" validate:"nullable,gte=0"`
	Quantity int     `json:"quantity" validate:"nullable,gte=1,lte=100"`
	Pin      string  `json:"pin" validate:"nullable,digits=4"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(registerInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Role:     "ADMIN",
		Price:    9.5,
		Quantity: 3,
		Pin:      "0042",
	})
	assert.Empty(t, errs)
}

func TestStructRequired(t *testing.T) {
	errs := Struct(registerInput{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.NotContains(t, errs, "role", "nullable field must be skipped when empty")
}

func TestStructEmail(t *testing.T) {
	errs := Struct(registerInput{Name: "Asha", Email: "not-an-email"})
	assert.Contains(t, errs, "email")
}

func TestStructIn(t *testing.T) {
	errs := Struct(registerInput{Name: "Asha", Email: "asha@example.com", Role: "ROOT"})
	assert.Contains(t, errs, "role")
}

func TestStructBounds(t *testing.T) {
	errs := Struct(registerInput{Name: "A", Email: "asha@example.com", Quantity: 500})
	assert.Contains(t, errs, "name", "min length")
	assert.Contains(t, errs, "quantity", "lte")
}

func TestStructDigits(t *testing.T) {
	errs := Struct(registerInput{Name: "Asha", Email: "asha@example.com", Pin: "123"})
	assert.Contains(t, errs, "pin")
}

type cartLine struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gte=0"`
	Quantity int     `json:"quantity" validate:"required,gte=1"`
}

type cart struct {
	Customer string     `json:"customer" validate:"required"`
	Items    []cartLine `json:"items"`
}

func TestStructSliceElements(t *testing.T) {
	errs := Struct(cart{
		Customer: "Asha",
		Items: []cartLine{
			{Name: "Dosa", Price: 90, Quantity: 2},
			{Name: "", Price: 25, Quantity: 0},
		},
	})
	assert.NotContains(t, errs, "items.0.name", "valid line must pass")
	assert.Contains(t, errs, "items.1.name")
	assert.Contains(t, errs, "items.1.quantity")
}

func TestSplitRulesKeepsInParams(t *testing.T) {
	rules := splitRules("required,in=USER,ADMIN,max=50")
	assert.Equal(t, []string{"required", "in=USER,ADMIN", "max=50"}, rules)
}
