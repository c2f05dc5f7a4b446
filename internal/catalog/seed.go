package catalog

import "github.com/kandyfoma/goshopper/internal/model"

// DefaultProducts returns the starter catalog of common Congolese market
// staples. Storage seeding uses it on first migration; tests use it as a
// known fixture.
func DefaultProducts() []model.CanonicalProduct {
	return []model.CanonicalProduct{
		{ProductID: "PROD_001", NormalizedName: "plantain", Category: "fruits", UnitOfMeasure: "kg",
			AliasesFR: []string{"banane plantain", "plantain"},
			AliasesEN: []string{"plantain", "banana plantain"}},
		{ProductID: "PROD_002", NormalizedName: "banane", Category: "fruits", UnitOfMeasure: "kg",
			AliasesFR: []string{"banane", "banane douce"},
			AliasesEN: []string{"banana", "sweet banana"}},
		{ProductID: "PROD_003", NormalizedName: "pomme de terre", Category: "legumes", UnitOfMeasure: "kg",
			AliasesFR: []string{"pomme de terre", "patate"},
			AliasesEN: []string{"potato", "potatoes"}},
		{ProductID: "PROD_004", NormalizedName: "tomate", Category: "legumes", UnitOfMeasure: "kg",
			AliasesFR: []string{"tomate", "tomates"},
			AliasesEN: []string{"tomato", "tomatoes"}},
		{ProductID: "PROD_005", NormalizedName: "oignon", Category: "legumes", UnitOfMeasure: "kg",
			AliasesFR: []string{"oignon", "oignons"},
			AliasesEN: []string{"onion", "onions"}},
		{ProductID: "PROD_006", NormalizedName: "ail", Category: "legumes", UnitOfMeasure: "piece",
			AliasesFR: []string{"ail"},
			AliasesEN: []string{"garlic"}},
		{ProductID: "PROD_007", NormalizedName: "huile vegetale", Category: "epicerie", UnitOfMeasure: "litre",
			AliasesFR: []string{"huile vegetale", "huile"},
			AliasesEN: []string{"vegetable oil", "cooking oil"}},
		{ProductID: "PROD_008", NormalizedName: "huile de palme", Category: "epicerie", UnitOfMeasure: "litre",
			AliasesFR: []string{"huile de palme", "huile rouge"},
			AliasesEN: []string{"palm oil", "red oil"}},
		{ProductID: "PROD_009", NormalizedName: "riz", Category: "epicerie", UnitOfMeasure: "kg",
			AliasesFR: []string{"riz"},
			AliasesEN: []string{"rice"}},
		{ProductID: "PROD_010", NormalizedName: "pain", Category: "boulangerie", UnitOfMeasure: "piece",
			AliasesFR: []string{"pain", "baguette"},
			AliasesEN: []string{"bread"}},
		{ProductID: "PROD_011", NormalizedName: "poulet", Category: "viandes", UnitOfMeasure: "kg",
			AliasesFR: []string{"poulet"},
			AliasesEN: []string{"chicken", "whole chicken"}},
		{ProductID: "PROD_012", NormalizedName: "boeuf", Category: "viandes", UnitOfMeasure: "kg",
			AliasesFR: []string{"boeuf", "viande de boeuf"},
			AliasesEN: []string{"beef"}},
		{ProductID: "PROD_013", NormalizedName: "poisson", Category: "poissons", UnitOfMeasure: "kg",
			AliasesFR: []string{"poisson"},
			AliasesEN: []string{"fish"}},
		{ProductID: "PROD_014", NormalizedName: "lait", Category: "laitier", UnitOfMeasure: "litre",
			AliasesFR: []string{"lait"},
			AliasesEN: []string{"milk"}},
		{ProductID: "PROD_015", NormalizedName: "sucre", Category: "epicerie", UnitOfMeasure: "kg",
			AliasesFR: []string{"sucre"},
			AliasesEN: []string{"sugar"}},
		{ProductID: "PROD_016", NormalizedName: "sel", Category: "epicerie", UnitOfMeasure: "kg",
			AliasesFR: []string{"sel"},
			AliasesEN: []string{"salt"}},
		{ProductID: "PROD_017", NormalizedName: "farine", Category: "epicerie", UnitOfMeasure: "kg",
			AliasesFR: []string{"farine", "farine de ble"},
			AliasesEN: []string{"flour", "wheat flour"}},
		{ProductID: "PROD_018", NormalizedName: "haricots", Category: "legumes", UnitOfMeasure: "kg",
			AliasesFR: []string{"haricots", "haricot"},
			AliasesEN: []string{"beans"}},
		{ProductID: "PROD_019", NormalizedName: "manioc", Category: "legumes", UnitOfMeasure: "kg",
			AliasesFR: []string{"manioc", "kwanga"},
			AliasesEN: []string{"cassava"}},
		{ProductID: "PROD_020", NormalizedName: "savon", Category: "menage", UnitOfMeasure: "piece",
			AliasesFR: []string{"savon"},
			AliasesEN: []string{"soap"}},
		{ProductID: "PROD_021", NormalizedName: "eau minerale", Category: "boissons", UnitOfMeasure: "litre",
			AliasesFR: []string{"eau minerale", "eau"},
			AliasesEN: []string{"mineral water", "water"}},
		{ProductID: "PROD_022", NormalizedName: "cheese", Category: "laitier", UnitOfMeasure: "kg",
			AliasesEN: []string{"cheese"}},
	}
}
