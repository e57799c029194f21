package config

// kitchenSchema constrains the shape of every definition, whatever its
// encoding. Definitions are closed, so unknown fields are rejected.
const kitchenSchema = `
#Requirement: {
	name:     string & !=""
	quantity: int & >0
}

#Ingredient: {
	name:     string & !=""
	quantity: int & >0
}

#SideDish: {
	name:     string
	category: "grain" | "pasta" | "legume" | "bread" | "salad" | "soup" | "starches" | "vegetable"
}

#Dish: {
	name:          string & !=""
	course:        "appetizer" | "main_course" | "dessert"
	requirements:  [#Requirement, ...#Requirement]
	prep_minutes?: int & >=0
	price?:        number & >=0
	cuisine?:      string

	appetizer?: {
		serving_style?: string
		spiciness?:     int & >=0
		vegetarian?:    bool
	}
	main_course?: {
		cooking_method?: string
		protein_type?:   string
		side_dishes?: [...#SideDish]
		gluten_free?: bool
	}
	dessert?: {
		flavor?:        string
		sweetness?:     int & >=0
		contains_nuts?: bool
	}
}

#Station: {
	name: string & !=""
	items?: [...string]
	stock?: [...#Ingredient]
}

#Dietary: {
	vegetarian?:  bool
	vegan?:       bool
	gluten_free?: bool
	nut_free?:    bool
	low_sodium?:  bool
	low_sugar?:   bool
}

#Order: {
	item:     string & !=""
	count?:   int & >=0
	dietary?: #Dietary
}

#Kitchen: {
	name: string & !=""
	menu: [#Dish, ...#Dish]
	stations?: [...#Station]
	backup?: [...#Ingredient]
	orders?: [...#Order]
}
`
