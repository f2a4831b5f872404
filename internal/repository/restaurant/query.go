package restaurant

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	domrest "github.com/kailas-cloud/restodex/internal/domain/restaurant"
	"github.com/kailas-cloud/restodex/internal/domain/search/filter"
	"github.com/kailas-cloud/restodex/internal/domain/search/order"
	"github.com/kailas-cloud/restodex/internal/domain/search/plan"
)

var textScoreMeta = bson.M{"$meta": "textScore"}

// filterDoc joins the plan's predicates, plus the text index clause when
// used, into a single AND filter.
func filterDoc(p plan.Plan) bson.M {
	clauses := make([]bson.M, 0)
	if q, ok := p.TextIndexQuery(); ok {
		clauses = append(clauses, bson.M{"$text": bson.M{"$search": q}})
	}
	for _, pred := range p.Predicates() {
		clauses = append(clauses, predicateDoc(pred))
	}

	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

func predicateDoc(p filter.Predicate) bson.M {
	switch p.Kind() {
	case filter.KindEq:
		return bson.M{p.Field(): p.Value()}
	case filter.KindIn:
		return bson.M{p.Field(): bson.M{"$in": p.Values()}}
	case filter.KindRange:
		r := bson.M{}
		if lo := p.Min(); lo != nil {
			r["$gte"] = *lo
		}
		if hi := p.Max(); hi != nil {
			r["$lte"] = *hi
		}
		return bson.M{p.Field(): r}
	case filter.KindContains:
		return bson.M{p.Field(): containsRegex(p.Text())}
	case filter.KindAnyContains:
		re := containsRegex(p.Text())
		or := make(bson.A, 0, len(p.Fields()))
		for _, f := range p.Fields() {
			or = append(or, bson.M{f: re})
		}
		return bson.M{"$or": or}
	case filter.KindTrue:
		return bson.M{p.Field(): true}
	default:
		return bson.M{}
	}
}

// containsRegex matches s literally anywhere in the field, ignoring case.
func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func sortDoc(spec order.Spec) bson.D {
	out := make(bson.D, 0, len(spec))
	for _, k := range spec {
		if k.Field == domrest.FieldTextScore {
			out = append(out, bson.E{Key: k.Field, Value: textScoreMeta})
			continue
		}
		out = append(out, bson.E{Key: k.Field, Value: int(k.Dir)})
	}
	return out
}

func projectionDoc(p plan.Plan) bson.D {
	out := make(bson.D, 0, len(p.Excluded())+1)
	for _, f := range p.Excluded() {
		out = append(out, bson.E{Key: f, Value: 0})
	}
	if _, ok := p.TextIndexQuery(); ok {
		out = append(out, bson.E{Key: domrest.FieldTextScore, Value: textScoreMeta})
	}
	return out
}

// geoNearStage builds the $geoNear stage of a GeoProximity plan. The
// filter runs as its query so distance and predicates compose by AND.
func geoNearStage(p plan.Plan) bson.M {
	stage, _ := p.Proximity()
	c := stage.Center()

	geoNear := bson.M{
		"near":          bson.M{"type": geoJSONPoint, "coordinates": bson.A{c.Longitude, c.Latitude}},
		"distanceField": domrest.FieldDistance,
		"maxDistance":   stage.Radius(),
		"spherical":     true,
		"key":           domrest.FieldLocation,
	}
	if f := filterDoc(p); len(f) > 0 {
		geoNear["query"] = f
	}
	return bson.M{"$geoNear": geoNear}
}

func geoPipeline(p plan.Plan) bson.A {
	w := p.StoreWindow()
	return bson.A{
		geoNearStage(p),
		bson.M{"$sort": sortDoc(p.StoreSort())},
		bson.M{"$skip": w.Skip()},
		bson.M{"$limit": int64(w.Limit())},
		bson.M{"$project": projectionDoc(p)},
	}
}

func geoCountPipeline(p plan.Plan) bson.A {
	return bson.A{
		geoNearStage(p),
		bson.M{"$count": "total"},
	}
}

func generalStatsPipeline() bson.A {
	return bson.A{
		bson.M{"$group": bson.M{
			"_id":               nil,
			"total_restaurants": bson.M{"$sum": 1},
			"avg_rating":        bson.M{"$avg": "$" + domrest.FieldRating},
			"avg_price":         bson.M{"$avg": "$" + domrest.FieldAvgCost},
			"min_price":         bson.M{"$min": "$" + domrest.FieldAvgCost},
			"max_price":         bson.M{"$max": "$" + domrest.FieldAvgCost},
		}},
	}
}

func cuisineStatsPipeline() bson.A {
	return bson.A{
		bson.M{"$group": bson.M{
			"_id":        "$" + domrest.FieldCuisineType,
			"count":      bson.M{"$sum": 1},
			"avg_rating": bson.M{"$avg": "$" + domrest.FieldRating},
		}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
	}
}

func cityStatsPipeline() bson.A {
	return bson.A{
		bson.M{"$group": bson.M{
			"_id":   "$" + domrest.FieldCity,
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}},
	}
}
