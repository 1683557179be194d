package model

type Book struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Author  string  `json:"author"`
	Genre   string  `json:"genre"`
	Price   float64 `json:"price"`
	Rating  float64 `json:"rating"`
	InStock bool    `json:"in_stock"`
	Summary string  `json:"summary"`
}
