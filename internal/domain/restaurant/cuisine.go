package restaurant

// Cuisine is the enumerated cuisine type of a restaurant.
type Cuisine string

// Supported cuisines.
const (
	Mexicana      Cuisine = "Mexicana"
	Italiana      Cuisine = "Italiana"
	Americana     Cuisine = "Americana"
	China         Cuisine = "China"
	Japonesa      Cuisine = "Japonesa"
	Francesa      Cuisine = "Francesa"
	India         Cuisine = "India"
	Cafe          Cuisine = "Café"
	Vegetariana   Cuisine = "Vegetariana"
	Vegana        Cuisine = "Vegana"
	Mariscos      Cuisine = "Mariscos"
	Parrilla      Cuisine = "Parrilla"
	ComidaRapida  Cuisine = "Comida Rápida"
	Gourmet       Cuisine = "Gourmet"
	Internacional Cuisine = "Internacional"
)

var cuisines = []Cuisine{
	Mexicana, Italiana, Americana, China, Japonesa, Francesa, India, Cafe,
	Vegetariana, Vegana, Mariscos, Parrilla, ComidaRapida, Gourmet, Internacional,
}

// Cuisines returns every supported cuisine in declaration order.
func Cuisines() []Cuisine {
	out := make([]Cuisine, len(cuisines))
	copy(out, cuisines)
	return out
}

// IsValid checks membership in the cuisine enum. Matching is exact.
func (c Cuisine) IsValid() bool {
	for _, v := range cuisines {
		if c == v {
			return true
		}
	}
	return false
}
