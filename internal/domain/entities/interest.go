package entities

import (
	"strings"
	"time"
)

// Interest is a named hobby or topic that people can share.
// ID stays empty until the interest is saved to a store.
type Interest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=255"`
	CreatedAt time.Time `json:"created_at"`
}

// NewInterest returns an unsaved interest with the given name.
func NewInterest(name string) *Interest {
	return &Interest{Name: strings.TrimSpace(name)}
}

// NormalizedName returns the lookup key for the interest's name.
func (i *Interest) NormalizedName() string {
	return NormalizeName(i.Name)
}

// Validate checks the interest's fields.
func (i *Interest) Validate() error {
	return validateNamed("interest", i)
}
