package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type Comment struct {
	ID        string    `json:"id" validate:"required"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

var validate = validator.New()

// Validate checks the shape of a record read from a backend.
func (c Comment) Validate() error {
	return validate.Struct(c)
}
