package juice

import (
	"database/sql/driver"
	"errors"
)

type Category string

const (
	CategoryFruit     Category = "fruit"
	CategoryVegetable Category = "vegetable"
	CategorySmoothie  Category = "smoothie"
)

var ErrInvalidCategory = errors.New("invalid category")

func (c Category) String() string {
	return string(c)
}

func (c Category) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCategory(s string) (Category, error) {
	switch s {
	case CategoryFruit.String():
		return CategoryFruit, nil
	case CategoryVegetable.String():
		return CategoryVegetable, nil
	case CategorySmoothie.String():
		return CategorySmoothie, nil
	default:
		return "", ErrInvalidCategory
	}
}
