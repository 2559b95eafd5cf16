package domain

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"` // rupees, no minor units
	ImageURL    string    `json:"image_url,omitempty"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors"`
	CreatedAt   time.Time `json:"created_at"`
}
