package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/pluscodes/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to the code service.
// Field names follow the JSON tags of the domain types, which the default
// resolver reads.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	boundsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Bounds",
		Fields: graphql.Fields{
			"min_lat": &graphql.Field{Type: graphql.Float},
			"min_lon": &graphql.Field{Type: graphql.Float},
			"max_lat": &graphql.Field{Type: graphql.Float},
			"max_lon": &graphql.Field{Type: graphql.Float},
		},
	})

	sizeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Size",
		Fields: graphql.Fields{
			"width":  &graphql.Field{Type: graphql.Float},
			"height": &graphql.Field{Type: graphql.Float},
		},
	})

	encodeResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "EncodeResult",
		Fields: graphql.Fields{
			"code":   &graphql.Field{Type: graphql.String},
			"length": &graphql.Field{Type: graphql.Int},
			"point":  &graphql.Field{Type: geoPointType},
		},
	})

	codeAreaType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CodeArea",
		Fields: graphql.Fields{
			"code":    &graphql.Field{Type: graphql.String},
			"area":    &graphql.Field{Type: boundsType},
			"center":  &graphql.Field{Type: geoPointType},
			"length":  &graphql.Field{Type: graphql.Int},
			"geohash": &graphql.Field{Type: graphql.String},
			"size_m":  &graphql.Field{Type: sizeType},
		},
	})

	shortCodeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ShortCode",
		Fields: graphql.Fields{
			"code":       &graphql.Field{Type: graphql.String},
			"short_code": &graphql.Field{Type: graphql.String},
			"reference":  &graphql.Field{Type: geoPointType},
			"distance_m": &graphql.Field{Type: graphql.Float},
		},
	})

	validityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Validity",
		Fields: graphql.Fields{
			"code":  &graphql.Field{Type: graphql.String},
			"valid": &graphql.Field{Type: graphql.Boolean},
			"short": &graphql.Field{Type: graphql.Boolean},
			"full":  &graphql.Field{Type: graphql.Boolean},
		},
	})

	pointArgs := graphql.FieldConfigArgument{
		"code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		"lat":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
		"lng":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"encode": &graphql.Field{
				Type:        encodeResultType,
				Description: "Encode a coordinate as a Plus Code",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lng":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"length": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Codes.Encode(p.Context, domain.EncodeRequest{
						Lat:    p.Args["lat"].(float64),
						Lng:    p.Args["lng"].(float64),
						Length: p.Args["length"].(int),
					})
				},
			},
			"decode": &graphql.Field{
				Type:        codeAreaType,
				Description: "Decode a full Plus Code into its area",
				Args: graphql.FieldConfigArgument{
					"code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Codes.Decode(p.Context, p.Args["code"].(string))
				},
			},
			"shorten": &graphql.Field{
				Type:        shortCodeType,
				Description: "Shorten a full code relative to a reference point",
				Args:        pointArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Codes.Shorten(p.Context, p.Args["code"].(string),
						p.Args["lat"].(float64), p.Args["lng"].(float64))
				},
			},
			"recoverNearest": &graphql.Field{
				Type:        shortCodeType,
				Description: "Recover the nearest full code from a short code",
				Args:        pointArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Codes.Recover(p.Context, p.Args["code"].(string),
						p.Args["lat"].(float64), p.Args["lng"].(float64))
				},
			},
			"validate": &graphql.Field{
				Type:        validityType,
				Description: "Classify a candidate code",
				Args: graphql.FieldConfigArgument{
					"code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Codes.Validate(p.Context, p.Args["code"].(string)), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Query == "" {
			return errBadRequest(c, "query is required")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
