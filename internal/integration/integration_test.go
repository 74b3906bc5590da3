package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianli/cookbook-graphql/config"
	"github.com/lucianli/cookbook-graphql/internal/logging"
	"github.com/lucianli/cookbook-graphql/internal/server"
	"github.com/lucianli/cookbook-graphql/internal/service"
	"github.com/lucianli/cookbook-graphql/internal/store"
	"github.com/lucianli/cookbook-graphql/internal/testhelpers"
)

type api struct {
	t   *testing.T
	url string
}

func setupAPI(t *testing.T, s store.Store) *api {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{ServerHost: "127.0.0.1", ServerPort: "0", CORSAllowedOrigins: []string{"http://localhost:5173"}}
	svc := service.NewCatalogService(s, service.DefaultPolicy(), nil)
	srv, err := server.New(cfg, s, svc, nil, logging.Discard().Slog())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &api{t: t, url: ts.URL + "/graphql"}
}

type result struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (a *api) call(query string, variables map[string]interface{}) result {
	a.t.Helper()
	body, err := json.Marshal(map[string]interface{}{"query": query, "variables": variables})
	require.NoError(a.t, err)

	resp, err := http.Post(a.url, "application/json", bytes.NewReader(body))
	require.NoError(a.t, err)
	defer resp.Body.Close()
	require.Equal(a.t, http.StatusOK, resp.StatusCode)

	var res result
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&res))
	return res
}

func (a *api) must(field, query string, variables map[string]interface{}, out interface{}) {
	a.t.Helper()
	res := a.call(query, variables)
	require.Empty(a.t, res.Errors, "%s failed", field)
	require.NoError(a.t, json.Unmarshal(res.Data[field], out))
}

type user struct {
	ID               string   `json:"_id"`
	PublishedRecipes []string `json:"publishedRecipes"`
	SavedRecipes     []string `json:"savedRecipes"`
}

type recipe struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

const (
	userFields = `_id publishedRecipes savedRecipes`

	addUserQuery    = `mutation ($in: UserInput!) { addUser(userToAdd: $in) { ` + userFields + ` } }`
	addRecipeQuery  = `mutation ($in: RecipeInput!) { addRecipe(recipeToAdd: $in) { _id title } }`
	saveQuery       = `mutation ($u: ID!, $r: ID!) { saveRecipe(userId: $u, recipeId: $r) { ` + userFields + ` } }`
	deleteUserQuery = `mutation ($e: String!, $n: String!, $p: String!) {
		deleteUser(email: $e, username: $n, password: $p) { ` + userFields + ` }
	}`
)

func (a *api) addUser(name string) user {
	var u user
	a.must("addUser", addUserQuery, map[string]interface{}{
		"in": map[string]interface{}{"email": name + "@x", "username": name, "password": "p"},
	}, &u)
	return u
}

func (a *api) addRecipe(authorID, title string) recipe {
	var r recipe
	a.must("addRecipe", addRecipeQuery, map[string]interface{}{
		"in": map[string]interface{}{
			"title":        title,
			"authorId":     authorID,
			"ingredients":  []string{"rice", "water"},
			"instructions": []string{"rinse", "simmer"},
			"difficulty":   1,
			"cuisine":      "Japanese",
			"cookingTime":  25,
			"dateCreated":  "2024-05-01",
			"dateModified": "2024-05-01",
		},
	}, &r)
	return r
}

func (a *api) recipes(field, userID string) []recipe {
	var out []recipe
	a.must(field, fmt.Sprintf(`query ($u: ID!) { %s(userId: $u) { _id title } }`, field),
		map[string]interface{}{"u": userID}, &out)
	return out
}

func runScenario(t *testing.T, a *api) {
	userA := a.addUser("a")
	userB := a.addUser("b")

	r := a.addRecipe(userA.ID, "Rice")
	assert.Equal(t, []recipe{r}, a.recipes("userPublishedRecipes", userA.ID))

	var saved user
	a.must("saveRecipe", saveQuery, map[string]interface{}{"u": userA.ID, "r": r.ID}, &saved)
	assert.Equal(t, []string{r.ID}, saved.SavedRecipes)
	assert.Equal(t, []recipe{r}, a.recipes("userSavedRecipes", userA.ID))

	var deleted recipe
	a.must("deleteRecipe", `mutation ($id: ID!) { deleteRecipe(id: $id) { _id title } }`,
		map[string]interface{}{"id": r.ID}, &deleted)
	assert.Equal(t, r, deleted)
	assert.Empty(t, a.recipes("userSavedRecipes", userA.ID))

	var snapshot user
	a.must("deleteUser", deleteUserQuery, map[string]interface{}{"e": "a@x", "n": "a", "p": "p"}, &snapshot)
	assert.Equal(t, userA.ID, snapshot.ID)
	assert.Equal(t, []string{}, snapshot.PublishedRecipes)
	assert.Equal(t, []string{}, snapshot.SavedRecipes)

	res := a.call(deleteUserQuery, map[string]interface{}{"e": "a@x", "n": "b", "p": "p"})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "User not found", res.Errors[0].Message)

	// B is untouched
	assert.Empty(t, a.recipes("userPublishedRecipes", userB.ID))
}

func runConcurrentSaves(t *testing.T, a *api) {
	author := a.addUser("author")
	fan := a.addUser("fan")

	const n = 6
	ids := make([]string, n)
	for i := range ids {
		ids[i] = a.addRecipe(author.ID, fmt.Sprintf("Dish %d", i)).ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				a.call(saveQuery, map[string]interface{}{"u": fan.ID, "r": id})
			}(id)
		}
	}
	wg.Wait()

	var got []recipe
	a.must("userSavedRecipes", `query ($u: ID!) { userSavedRecipes(userId: $u) { _id } }`,
		map[string]interface{}{"u": fan.ID}, &got)
	gotIDs := make([]string, len(got))
	for i, r := range got {
		gotIDs[i] = r.ID
	}
	assert.ElementsMatch(t, ids, gotIDs)
}

func runAll(t *testing.T, newStore func(t *testing.T) store.Store) {
	t.Run("Scenario", func(t *testing.T) { runScenario(t, setupAPI(t, newStore(t))) })
	t.Run("ConcurrentSaves", func(t *testing.T) { runConcurrentSaves(t, setupAPI(t, newStore(t))) })
}

func TestSQLite(t *testing.T) {
	runAll(t, func(t *testing.T) store.Store { return testhelpers.NewSQLiteStore(t) })
}

func TestPostgres(t *testing.T) {
	s := testhelpers.NewPostgresStore(t)
	runAll(t, func(t *testing.T) store.Store {
		require.NoError(t, s.DB().Exec("TRUNCATE user_recipe_refs, recipes, users").Error)
		return s
	})
}

func TestMongo(t *testing.T) {
	s := testhelpers.NewMongoStore(t)
	runAll(t, func(t *testing.T) store.Store {
		require.NoError(t, s.Reset(context.Background()))
		return s
	})
}
