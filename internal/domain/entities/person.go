package entities

import (
	"strings"
	"time"
)

// Person is one side of the person/interest association.
// ID stays empty until the person is saved to a store.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=255"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPerson returns an unsaved person with the given name.
func NewPerson(name string) *Person {
	return &Person{Name: strings.TrimSpace(name)}
}

// NormalizedName returns the lookup key for the person's name.
func (p *Person) NormalizedName() string {
	return NormalizeName(p.Name)
}

// Validate checks the person's fields.
func (p *Person) Validate() error {
	return validateNamed("person", p)
}
