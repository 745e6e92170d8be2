package domain

// DrinkSummary is a catalog listing entry: enough to render a card and to
// add the drink to a cart.
type DrinkSummary struct {
	ID    string `json:"idDrink"`
	Name  string `json:"strDrink"`
	Thumb string `json:"strDrinkThumb,omitempty"`
}

// Drink is the full detail record for a single catalog item.
type Drink struct {
	ID           string   `json:"idDrink"`
	Name         string   `json:"strDrink"`
	Thumb        string   `json:"strDrinkThumb,omitempty"`
	Category     string   `json:"strCategory,omitempty"`
	Ingredients  []string `json:"ingredients,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// Summary projects the detail record down to its listing form.
func (d Drink) Summary() DrinkSummary {
	return DrinkSummary{ID: d.ID, Name: d.Name, Thumb: d.Thumb}
}
