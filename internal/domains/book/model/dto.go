package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CreateBookRequest carries the multipart form fields of a create call.
// Price arrives as text and is coerced through decimal so "12.99" survives
// the round trip exactly.
type CreateBookRequest struct {
	BookName   string `form:"bookName"`
	AuthorName string `form:"authorName"`
	Price      string `form:"price"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookName,
			validation.Required.Error("book name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.AuthorName,
			validation.Required.Error("author name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Price,
			validation.Required.Error("price is required"),
			validation.By(validatePrice),
		),
	)
}

// PriceValue returns the coerced price. Call Validate first.
func (r CreateBookRequest) PriceValue() float64 {
	d, _ := decimal.NewFromString(r.Price)
	return d.InexactFloat64()
}

// UpdateBookRequest carries the multipart form fields of an update call.
// Nil fields were absent from the form and stay unchanged.
type UpdateBookRequest struct {
	BookName   *string
	AuthorName *string
	Price      *string
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookName,
			validation.NilOrNotEmpty.Error("book name must not be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.AuthorName,
			validation.NilOrNotEmpty.Error("author name must not be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Price,
			validation.NilOrNotEmpty.Error("price must not be empty"),
			validation.By(validatePrice),
		),
	)
}

// ToPatch converts the validated request into a repository patch.
func (r UpdateBookRequest) ToPatch() BookPatch {
	patch := BookPatch{
		BookName:   r.BookName,
		AuthorName: r.AuthorName,
	}
	if r.Price != nil {
		d, _ := decimal.NewFromString(*r.Price)
		v := d.InexactFloat64()
		patch.Price = &v
	}
	return patch
}

func validatePrice(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return errors.New("price must be a number")
	}
	if s == "" {
		return nil // Required / NilOrNotEmpty own the empty case
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return errors.New("price must be a number")
	}
	if d.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}
