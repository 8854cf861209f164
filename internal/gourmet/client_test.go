// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gourmet

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/gourmet/internal/apierr"
	"github.com/pdiddy/gourmet/internal/httputil"
	"github.com/pdiddy/gourmet/pkg/types"
)

var testCred = types.Credential{Token: "secret-token", Username: "alice"}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(ts.URL+"/", WithHTTPClient(ts.Client()), WithLogger(zaptest.NewLogger(t)), WithUserAgent("gourmet-test"))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// --- ListRecipes ---

func TestListRecipes(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/recipes", r.URL.Path)
		assert.Equal(t, "gourmet-test", r.Header.Get("User-Agent"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusOK, `{"recipes": [
			{"id": 1, "name": "Soupe", "prep_time": 10},
			{"recipe_id": "2", "title": "Tarte", "imageUrl": "t.jpg", "cook_time": 0}
		]}`)
	}))

	got, err := c.ListRecipes(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, types.Recipe{ID: "1", Name: "Soupe", PrepTime: types.Number(10)}, got[0])
	assert.Equal(t, types.Recipe{ID: "2", Name: "Tarte", ImageURL: "t.jpg"}, got[1])
}

func TestListRecipes_RetriesNotAcceptable(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusNotAcceptable)
			return
		}
		writeJSON(w, http.StatusOK, `[{"id": "7", "name": "Gratin"}]`)
	}))

	got, err := c.ListRecipes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	require.Len(t, got, 1)
	assert.Equal(t, "Gratin", got[0].Name)
}

func TestListRecipes_AllNotAcceptable(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotAcceptable)
	}))

	_, err := c.ListRecipes(context.Background())

	assert.ErrorIs(t, err, apierr.ErrNegotiationExhausted)
	assert.Equal(t, int32(len(httputil.DefaultVariants())), atomic.LoadInt32(&calls))
}

func TestListRecipes_HTMLThenJSON(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Content-Type", "text/plain")
			io.WriteString(w, "<!DOCTYPE html><html>maintenance</html>")
			return
		}
		writeJSON(w, http.StatusOK, `[]`)
	}))

	got, err := c.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestListRecipes_MalformedJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"recipes": [`)
	}))

	_, err := c.ListRecipes(context.Background())
	assert.ErrorIs(t, err, apierr.ErrMalformedResponse)
}

func TestListRecipes_ServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "kaput", http.StatusBadGateway)
	}))

	_, err := c.ListRecipes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apierr.ErrUpstreamRejected)
	assert.Equal(t, http.StatusBadGateway, apierr.StatusOf(err))
	assert.Contains(t, err.Error(), "kaput")
}

func TestListRecipes_CustomVariants(t *testing.T) {
	var accepts []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accepts = append(accepts, r.Header.Get("Accept"))
		if len(accepts) == 1 {
			w.WriteHeader(http.StatusNotAcceptable)
			return
		}
		writeJSON(w, http.StatusOK, `[]`)
	}))
	WithVariants(httputil.AcceptVariants([]string{"text/json", "application/json"}))(c)

	_, err := c.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"text/json", "application/json"}, accepts)
}

// --- GetRecipe / RecipePayload ---

func TestGetRecipe(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/42", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"id": 42, "title": "Flan", "servings": "6", "ingredients": "lait, oeufs"}`)
	}))

	got, err := c.GetRecipe(context.Background(), "42")
	require.NoError(t, err)

	assert.Equal(t, "42", got.ID)
	assert.Equal(t, "Flan", got.Name)
	assert.Equal(t, types.Number(6), got.Servings)
	assert.False(t, got.Ingredients.IsList())
}

func TestGetRecipe_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"error": "no such recipe"}`)
	}))

	_, err := c.GetRecipe(context.Background(), "missing")
	require.Error(t, err)

	assert.ErrorIs(t, err, apierr.ErrNotFound)
	assert.Equal(t, apierr.CodeNotFound, apierr.CodeOf(err))
	assert.Equal(t, http.StatusNotFound, apierr.StatusOf(err))
}

func TestGetRecipe_ExhaustionIsNotNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
	}))

	_, err := c.GetRecipe(context.Background(), "1")
	assert.ErrorIs(t, err, apierr.ErrNegotiationExhausted)
	assert.NotErrorIs(t, err, apierr.ErrNotFound)
	assert.Equal(t, apierr.CodeNegotiationExhausted, apierr.CodeOf(err))
}

func TestRecipePayload_ExhaustionIsNotNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"all not acceptable", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotAcceptable)
		}},
		{"all html pages", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, "<!DOCTYPE html><html>erreur</html>")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			_, err := c.RecipePayload(context.Background(), "1")
			require.Error(t, err)
			assert.Equal(t, apierr.CodeNegotiationExhausted, apierr.CodeOf(err))
			assert.NotErrorIs(t, err, apierr.ErrNotFound)
		})
	}
}

func TestGetRecipe_EmptyWrapperUsesEscapedPath(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"recipe": null}`)
	}))

	_, err := c.GetRecipe(context.Background(), "a/b")
	require.Error(t, err)

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierr.CodeNotFound, apiErr.Code)
	assert.Equal(t, "GET /recipes/a%2Fb", apiErr.Op)
}

func TestGetRecipe_EscapesID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/a%2Fb", r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, `{"id": "a/b"}`)
	}))

	got, err := c.GetRecipe(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", got.ID)
}

func TestGetRecipe_EmptyID(t *testing.T) {
	c := New("http://127.0.0.1:0")

	_, err := c.GetRecipe(context.Background(), "  ")
	assert.ErrorIs(t, err, apierr.ErrInvalidRequest)
}

func TestRecipePayload_NotAnObject(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[1, 2]`)
	}))

	_, err := c.RecipePayload(context.Background(), "1")
	assert.ErrorIs(t, err, apierr.ErrMalformedResponse)
}

// --- Login ---

func TestLogin(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"username": "alice", "password": "pw"}, body)

		writeJSON(w, http.StatusOK, `{"token": "abc", "user": {"username": "alice"}}`)
	}))

	got, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	assert.Equal(t, "abc", got.Token)
	assert.Equal(t, types.Credential{Token: "abc", Username: "alice"}, got.Credential("alice"))
	assert.Contains(t, got.Payload, "user")
}

func TestLogin_BodyResentOnEveryAttempt(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(data), `"username":"alice"`)
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusNotAcceptable)
			return
		}
		writeJSON(w, http.StatusOK, `{"access_token": "xyz"}`)
	}))

	got, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "xyz", got.Token)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"unauthorized", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"error": "bad credentials"}`)
		}},
		{"exhausted", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotAcceptable)
		}},
		{"no token", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, `{"message": "ok"}`)
		}},
		{"not json", func(w http.ResponseWriter, _ *http.Request) {
			io.WriteString(w, "welcome")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)

			_, err := c.Login(context.Background(), "alice", "pw")
			require.Error(t, err)
			assert.ErrorIs(t, err, apierr.ErrAuthFailed)
			assert.NotContains(t, err.Error(), "pw\"")
		})
	}
}

func TestLogin_MissingInput(t *testing.T) {
	c := New("http://127.0.0.1:0")

	_, err := c.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, apierr.ErrInvalidRequest)

	_, err = c.Login(context.Background(), "alice", "")
	assert.ErrorIs(t, err, apierr.ErrInvalidRequest)
}

func TestLogin_TransportErrorStaysTransport(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url).Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, apierr.ErrTransport)
	assert.NotErrorIs(t, err, apierr.ErrAuthFailed)
}

// --- Favorites ---

func TestListFavorites_UnwrapsRecipe(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/favorites", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"favorites": [{"recipe": {"id": 1, "name": "Soupe"}}]}`)
	}))

	got, err := c.ListFavorites(context.Background(), testCred)
	require.NoError(t, err)
	assert.Equal(t, types.Recipes{{ID: "1", Name: "Soupe"}}, got)
}

func TestListFavorites_RequiresCredential(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))

	_, err := c.ListFavorites(context.Background(), types.Credential{Username: "alice"})
	assert.ErrorIs(t, err, apierr.ErrInvalidRequest)
	assert.ErrorIs(t, err, types.ErrIncompleteCredential)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestErrorsNeverCarryToken(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))

	_, err := c.ListFavorites(context.Background(), testCred)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testCred.Token)
}

func TestIsFavorite(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[{"recipe": {"id": 3}}, {"id": "5"}]`)
	}))

	yes, err := c.IsFavorite(context.Background(), "5", testCred)
	require.NoError(t, err)
	assert.True(t, yes)

	no, err := c.IsFavorite(context.Background(), "4", testCred)
	require.NoError(t, err)
	assert.False(t, no)
}

func TestAddFavorite(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/alice/favorites", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("recipeID"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		writeJSON(w, http.StatusCreated, `{"status": "added"}`)
	}))

	got, err := c.AddFavorite(context.Background(), "12", testCred)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, got.StatusCode)
	assert.Equal(t, map[string]any{"status": "added"}, got.Payload)
}

func TestAddFavorite_Conflict(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "already a favorite", http.StatusConflict)
	}))

	_, err := c.AddFavorite(context.Background(), "12", testCred)
	assert.ErrorIs(t, err, apierr.ErrUpstreamRejected)
	assert.Equal(t, http.StatusConflict, apierr.StatusOf(err))
}

func TestRemoveFavorite(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   any
	}{
		{"no content", http.StatusNoContent, "", nil},
		{"ok json", http.StatusOK, `{"removed": true}`, map[string]any{"removed": true}},
		{"already removed", http.StatusNotFound, "not found", "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "9", r.URL.Query().Get("recipeID"))
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))

			got, err := c.RemoveFavorite(context.Background(), "9", testCred)
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.StatusCode)
			assert.Equal(t, tt.want, got.Payload)
		})
	}
}

func TestRemoveFavorite_ServerError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.RemoveFavorite(context.Background(), "9", testCred)
	assert.ErrorIs(t, err, apierr.ErrUpstreamRejected)
}

func TestFavorites_EscapesUsername(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.EscapedPath(), "/users/jean%20dupont/"), r.URL.EscapedPath())
		writeJSON(w, http.StatusOK, `[]`)
	}))

	_, err := c.ListFavorites(context.Background(), types.Credential{Token: "t", Username: "jean dupont"})
	require.NoError(t, err)
}

func TestContextCancelled(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `[]`)
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListRecipes(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.ErrorIs(t, err, apierr.ErrTransport)
}
