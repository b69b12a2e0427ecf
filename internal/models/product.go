package models

import "time"

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nombre"`
	Description  string    `json:"descripcion"`
	Price        float64   `json:"precio"`
	Stock        int64     `json:"stock"`
	ImageURL     string    `json:"imagen_url"`
	CategoryID   *int64    `json:"categoria_id"`
	CategoryName *string   `json:"categoria_nombre,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
