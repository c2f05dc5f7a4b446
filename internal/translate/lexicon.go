package translate

// defaultLexicon maps French terms to English for the product vocabulary
// seen on DRC retail receipts. Multi-word phrases are matched greedily
// before single words.
var defaultLexicon = map[string]string{
	// Fruits
	"banane":          "banana",
	"banane plantain": "plantain",
	"plantain":        "plantain",
	"orange":          "orange",
	"pomme":           "apple",
	"mangue":          "mango",
	"ananas":          "pineapple",
	"papaye":          "papaya",
	"avocat":          "avocado",
	"citron":          "lemon",
	"pastèque":        "watermelon",
	"melon d'eau":     "watermelon",
	"raisin":          "grape",
	"poire":           "pear",
	"pêche":           "peach",
	"abricot":         "apricot",
	"prune":           "plum",
	"fraise":          "strawberry",
	"framboise":       "raspberry",
	"myrtille":        "blueberry",

	// Vegetables
	"tomate":        "tomato",
	"oignon":        "onion",
	"ail":           "garlic",
	"carotte":       "carrot",
	"pomme de terre": "potato",
	"patate":        "potato",
	"manioc":        "cassava",
	"kwanga":        "cassava",
	"chou":          "cabbage",
	"épinard":       "spinach",
	"poivre":        "pepper",
	"piment":        "chili",
	"poivron":       "bell pepper",
	"aubergine":     "eggplant",
	"gombo":         "okra",
	"laitue":        "lettuce",
	"concombre":     "cucumber",
	"courgette":     "zucchini",
	"haricot vert":  "green bean",
	"petit pois":    "pea",
	"maïs":          "corn",

	// Proteins
	"poulet":           "chicken",
	"boeuf":            "beef",
	"viande":           "meat",
	"viande de boeuf":  "beef",
	"chèvre":           "goat",
	"viande de chèvre": "goat meat",
	"porc":             "pork",
	"agneau":           "lamb",
	"mouton":           "mutton",
	"poisson":          "fish",
	"oeuf":             "egg",
	"tilapia":          "tilapia",
	"sardine":          "sardine",
	"thon":             "tuna",
	"saumon":           "salmon",
	"crevette":         "shrimp",
	"crabe":            "crab",

	// Dairy
	"lait":    "milk",
	"beurre":  "butter",
	"fromage": "cheese",
	"yaourt":  "yogurt",
	"yogourt": "yogurt",
	"crème":   "cream",

	// Grains and staples
	"riz":        "rice",
	"farine":     "flour",
	"pain":       "bread",
	"pâtes":      "pasta",
	"spaghetti":  "spaghetti",
	"macaroni":   "macaroni",
	"haricots":   "beans",
	"haricot":    "bean",
	"lentille":   "lentil",
	"arachide":   "peanut",
	"cacahuète":  "peanut",
	"noix":       "nut",

	// Oils and condiments
	"huile":               "oil",
	"huile de palme":      "palm oil",
	"huile rouge":         "red oil",
	"huile végétale":      "vegetable oil",
	"sel":                 "salt",
	"sucre":               "sugar",
	"miel":                "honey",
	"vinaigre":            "vinegar",
	"concentré de tomate": "tomato paste",
	"pâte de tomate":      "tomato paste",
	"mayonnaise":          "mayonnaise",
	"ketchup":             "ketchup",
	"moutarde":            "mustard",
	"sauce":               "sauce",
	"épice":               "spice",
	"cube maggi":          "bouillon cube",
	"bouillon":            "bouillon",

	// Beverages
	"eau":             "water",
	"eau minérale":    "mineral water",
	"soda":            "soda",
	"boisson":         "drink",
	"boisson gazeuse": "soda",
	"jus":             "juice",
	"jus de fruit":    "fruit juice",
	"bière":           "beer",
	"vin":             "wine",
	"café":            "coffee",
	"thé":             "tea",
	"lait concentré":  "condensed milk",

	// Hygiene and household
	"savon":             "soap",
	"détergent":         "detergent",
	"lessive":           "laundry detergent",
	"dentifrice":        "toothpaste",
	"brosse à dents":    "toothbrush",
	"papier toilette":   "toilet paper",
	"papier hygiénique": "toilet paper",
	"couche":            "diaper",
	"shampooing":        "shampoo",
	"après-shampooing":  "conditioner",
	"lotion":            "lotion",

	// Units and quantities
	"kilogramme": "kilogram",
	"kilo":       "kilogram",
	"gramme":     "gram",
	"litre":      "liter",
	"morceau":    "piece",
	"paquet":     "pack",
	"sachet":     "sachet",
	"boîte":      "box",
	"bouteille":  "bottle",
	"sac":        "bag",

	// Common adjectives
	"frais":       "fresh",
	"fraîche":     "fresh",
	"sec":         "dry",
	"sèche":       "dry",
	"entier":      "whole",
	"entière":     "whole",
	"moulu":       "ground",
	"coupé":       "cut",
	"congelé":     "frozen",
	"en conserve": "canned",
}
