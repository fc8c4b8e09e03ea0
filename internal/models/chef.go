package models

// Chef represents a kitchen staff profile shown on the about page
type Chef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	ImageURL string `json:"imageUrl"`
}

// ValidChefTitle reports whether title is one of the recognized kitchen roles
func ValidChefTitle(title string) bool {
	switch title {
	case "Head Chef", "Sous Chef", "Pastry Chef", "Chef de Partie":
		return true
	}
	return false
}
