package models

// Category представляет категорию объектов аренды (автомобили, дроны,
// недвижимость, оборудование). Категории заполняются сид-миграцией.
type Category struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"` // Название категории (уникальное)
	Description  *string `json:"description"`
	ImageURL     *string `json:"imageUrl"`
	Slug         string  `json:"slug"`         // Слаг для URL (уникальный)
	ListingCount int     `json:"listingCount"` // Количество объектов в категории
}
