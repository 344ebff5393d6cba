package main

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BookEntity is the logical name of the sample book entity.
const BookEntity = "bookstore.book"

// MisspelledTitleMessage rejects the common misspelling of curiosity.
const MisspelledTitleMessage = `It is not allowed to enter misspelled word "curiousity".`

// Book represents a book entity record.
type Book struct {
	ID            string `json:"id"`
	Code          string `json:"code,omitempty"`
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author"`
	NumberOfPages int    `json:"numberOfPages" validate:"gte=0"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// single validator instance, it caches struct rules.
var bookValidator = validator.New()

// ValidateBookPayload checks a raw book payload against the entity rules:
// struct tags first, then the title misspelling rule.
func ValidateBookPayload(data []byte) error {
	var book Book
	if err := json.Unmarshal(data, &book); err != nil {
		return err
	}
	if err := bookValidator.Struct(book); err != nil {
		return err
	}
	if strings.Contains(strings.ToLower(book.Title), "curiousity") {
		return errors.New(MisspelledTitleMessage)
	}
	return nil
}

// BookDefinition returns the engine definition of the book entity.
func BookDefinition() EntityDefinition {
	return EntityDefinition{
		Name:     BookEntity,
		IDPrefix: BookIDPrefix,
		Validate: ValidateBookPayload,
	}
}
