package graph

import (
	_ "embed"
	"encoding/json"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

var (
	//go:embed schema.graphql
	querySchema string

	//go:embed mutation.graphql
	mutationSchema string
)

const maxDepth = 10

// Handler serves GraphQL requests. POST bodies may run queries and
// mutations; GET requests run against a query-only schema so they cannot
// change data.
type Handler struct {
	post *relay.Handler
	get  *graphql.Schema
}

// NewHandler parses the schema and binds it to r.
func NewHandler(r *Resolver) (*Handler, error) {
	full, err := graphql.ParseSchema(querySchema+"\n"+mutationSchema, r, graphql.MaxDepth(maxDepth))
	if err != nil {
		return nil, err
	}
	readOnly, err := graphql.ParseSchema(querySchema, r, graphql.MaxDepth(maxDepth))
	if err != nil {
		return nil, err
	}
	return &Handler{post: &relay.Handler{Schema: full}, get: readOnly}, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.post.ServeHTTP(w, r)
	case http.MethodGet:
		h.serveGet(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) serveGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("query")
	if query == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}

	var variables map[string]interface{}
	if raw := q.Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &variables); err != nil {
			http.Error(w, "variables must be a JSON object", http.StatusBadRequest)
			return
		}
	}

	response := h.get.Exec(r.Context(), query, q.Get("operationName"), variables)
	body, err := json.Marshal(response)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
