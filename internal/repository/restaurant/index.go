package restaurant

import (
	"github.com/kailas-cloud/restodex/internal/db"
	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
)

// TextIndexLanguage is the stemming language of the weighted text index.
const TextIndexLanguage = "spanish"

// Indexes returns the index set for the restaurant collection.
func Indexes() []*db.IndexDefinition {
	return []*db.IndexDefinition{
		db.NewIndex("restaurant_text").
			Text(domrest.FieldName, 10).
			Text(domrest.FieldCuisineType, 8).
			Text(domrest.FieldCategory, 6).
			Text(domrest.FieldTags, 4).
			Text(domrest.FieldDescription, 2).
			Language(TextIndexLanguage).
			MustBuild(),
		db.NewIndex("location_2dsphere").Geo2DSphere(domrest.FieldLocation).MustBuild(),
		db.NewIndex("cuisine_rating").Asc(domrest.FieldCuisineType).Desc(domrest.FieldRating).MustBuild(),
		db.NewIndex("city_cost").Asc(domrest.FieldCity).Asc(domrest.FieldAvgCost).MustBuild(),
		db.NewIndex("rating_desc").Desc(domrest.FieldRating).MustBuild(),
		db.NewIndex("price_level").Asc(domrest.FieldPriceLevel).MustBuild(),
		db.NewIndex("created_at_desc").Desc(domrest.FieldCreatedAt).MustBuild(),
		db.NewIndex("category").Asc(domrest.FieldCategory).MustBuild(),
	}
}
