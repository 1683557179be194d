package tools

import "github.com/Chative-core-poc-v1/bookseller/internal/agent/model"

// SampleCatalog is the demo inventory. Every title sells at the flat unit price.
var SampleCatalog = []model.Book{
	{ID: "bk-001", Title: "The Silent Patient", Author: "Alex Michaelides", Genre: "thriller", Price: 15.99, Rating: 4.5, InStock: true,
		Summary: "A psychotherapist becomes obsessed with a woman who stopped speaking after shooting her husband."},
	{ID: "bk-002", Title: "The Thursday Murder Club", Author: "Richard Osman", Genre: "mystery", Price: 15.99, Rating: 4.4, InStock: true,
		Summary: "Four retirees in a quiet village meet weekly to investigate unsolved murders."},
	{ID: "bk-003", Title: "And Then There Were None", Author: "Agatha Christie", Genre: "mystery", Price: 15.99, Rating: 4.7, InStock: true,
		Summary: "Ten strangers are lured to an island and killed one by one in this classic detective puzzle."},
	{ID: "bk-004", Title: "The Hound of the Baskervilles", Author: "Arthur Conan Doyle", Genre: "mystery", Price: 15.99, Rating: 4.3, InStock: false,
		Summary: "Sherlock Holmes investigates a legendary hound on the Devon moors."},
	{ID: "bk-005", Title: "Project Hail Mary", Author: "Andy Weir", Genre: "sci-fi", Price: 15.99, Rating: 4.8, InStock: true,
		Summary: "A lone astronaut wakes with no memory and must save Earth from a dimming sun."},
	{ID: "bk-006", Title: "Dune", Author: "Frank Herbert", Genre: "sci-fi", Price: 15.99, Rating: 4.6, InStock: true,
		Summary: "Politics, religion and ecology collide on the desert planet Arrakis."},
	{ID: "bk-007", Title: "The Name of the Wind", Author: "Patrick Rothfuss", Genre: "fantasy", Price: 15.99, Rating: 4.6, InStock: true,
		Summary: "A gifted young man recounts how he became the most notorious wizard of his age."},
	{ID: "bk-008", Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: "fantasy", Price: 15.99, Rating: 4.7, InStock: true,
		Summary: "Bilbo Baggins is swept into a quest to reclaim a dwarf kingdom from a dragon."},
	{ID: "bk-009", Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "romance", Price: 15.99, Rating: 4.5, InStock: true,
		Summary: "Elizabeth Bennet and Mr Darcy misjudge each other across the drawing rooms of Regency England."},
	{ID: "bk-010", Title: "Atomic Habits", Author: "James Clear", Genre: "self-help", Price: 15.99, Rating: 4.6, InStock: true,
		Summary: "Small, consistent changes compound into remarkable results."},
	{ID: "bk-011", Title: "Steve Jobs", Author: "Walter Isaacson", Genre: "biography", Price: 15.99, Rating: 4.4, InStock: true,
		Summary: "The authorised biography of the Apple co-founder, drawn from more than forty interviews."},
	{ID: "bk-012", Title: "Sapiens", Author: "Yuval Noah Harari", Genre: "history", Price: 15.99, Rating: 4.5, InStock: true,
		Summary: "A brief history of humankind from the Stone Age to the present."},
	{ID: "bk-013", Title: "The Midnight Library", Author: "Matt Haig", Genre: "fiction", Price: 15.99, Rating: 4.2, InStock: true,
		Summary: "Between life and death sits a library of every life you could have lived."},
	{ID: "bk-014", Title: "It", Author: "Stephen King", Genre: "horror", Price: 15.99, Rating: 4.3, InStock: true,
		Summary: "Seven friends confront a shape-shifting evil that haunts their hometown."},
}
