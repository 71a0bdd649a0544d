// Package graphql exposes a read-only catalogue query API at /api/graphql.
//
// Example query:
//
//	{ components(categoryId: 2) { id name price stock } categories { id name } }
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/app/repositories"
	pkggraphql "github.com/buildmaster/storefront/pkg/graphql"
	"github.com/buildmaster/storefront/pkg/response"
	"github.com/graphql-go/graphql"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
	},
})

var componentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Component",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.Int, Resolve: componentField(func(c models.Component) interface{} { return c.ID })},
		"name":  &graphql.Field{Type: graphql.String, Resolve: componentField(func(c models.Component) interface{} { return c.Name })},
		"brand": &graphql.Field{Type: graphql.String, Resolve: componentField(func(c models.Component) interface{} { return c.Brand })},
		"price": &graphql.Field{Type: graphql.String, Resolve: componentField(func(c models.Component) interface{} { return c.Price.StringFixed(2) })},
		"stock": &graphql.Field{Type: graphql.Int, Resolve: componentField(func(c models.Component) interface{} { return c.Stock })},
		"category": &graphql.Field{
			Type: categoryType,
			Resolve: componentField(func(c models.Component) interface{} {
				if c.Category == nil {
					return nil
				}
				return *c.Category
			}),
		},
	},
})

func componentField(pick func(models.Component) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		if c, ok := p.Source.(models.Component); ok {
			return pick(c), nil
		}
		return nil, nil
	}
}

func rootQuery() *graphql.Object {
	components := repositories.NewComponentRepository()
	categories := repositories.NewCategoryRepository()

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"component": &graphql.Field{
				Type: componentType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return components.FindByID(uint(id))
				},
			},
			"components": &graphql.Field{
				Type: graphql.NewList(componentType),
				Args: graphql.FieldConfigArgument{
					"categoryId": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					categoryID, _ := p.Args["categoryId"].(int)
					return components.Active(uint(categoryID))
				},
			},
			"categories": &graphql.Field{
				Type:    graphql.NewList(categoryType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) { return categories.All() },
			},
		},
	})
}

// Handler serves POST /api/graphql.
func Handler() http.HandlerFunc {
	schema, err := pkggraphql.NewSchema(rootQuery())

	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "GraphQL schema failed to build")
			return
		}

		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil || body.Query == "" {
			response.Error(w, http.StatusBadRequest, "A query is required")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
