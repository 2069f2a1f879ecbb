// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routeindex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RouterTestSuite tests the router facade end to end
type RouterTestSuite struct {
	suite.Suite

	idx *Router[string]
}

func (suite *RouterTestSuite) SetupTest() {
	suite.idx = New[string]()
}

func (suite *RouterTestSuite) find(method, path string, capture bool) *MatchedRoute[string] {
	match, err := suite.idx.FindRoute(method, path, capture)
	require.NoError(suite.T(), err, "%s %s", method, path)
	return match
}

func (suite *RouterTestSuite) notFound(method, path string) {
	_, err := suite.idx.FindRoute(method, path, true)
	require.Error(suite.T(), err, "%s %s", method, path)
	assert.ErrorIs(suite.T(), err, ErrRouteNotFound)
}

func (suite *RouterTestSuite) TestStaticRoute() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/home", "H"))

	match := suite.find("GET", "/home", false)
	suite.Equal("H", *match.Payload)
	suite.Equal("/home", match.Pattern)
	suite.Nil(match.Params, "params view absent when capture is off")

	suite.notFound("POST", "/home")
}

func (suite *RouterTestSuite) TestNamedParameter() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/users/:userId", "U"))

	match := suite.find("GET", "/users/123", true)
	suite.Equal("U", *match.Payload)
	suite.Equal("123", match.Params.Get("userId"))
	suite.Equal([]string{"userId"}, match.Params.Keys())

	// A required parameter never matches the empty segment.
	suite.notFound("GET", "/users/")
}

func (suite *RouterTestSuite) TestOptionalParameter() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/search/:query?", "S"))

	match := suite.find("GET", "/search/rust", true)
	suite.Equal("rust", match.Params.Get("query"))

	match = suite.find("GET", "/search/", true)
	suite.Equal("S", *match.Payload)
	suite.Equal(0, match.Params.Len(), "absent optional binds nothing")

	match = suite.find("GET", "/search", true)
	suite.Equal("S", *match.Payload)
	suite.Equal(0, match.Params.Len())
}

func (suite *RouterTestSuite) TestCatchAll() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/assets/**:filepath", "A"))

	match := suite.find("GET", "/assets/css/site.css", true)
	suite.Equal("A", *match.Payload)
	suite.Equal("css/site.css", match.Params.Get("filepath"))

	// A catch-all matches zero segments.
	match = suite.find("GET", "/assets/", true)
	value, ok := match.Params.Lookup("filepath")
	suite.True(ok)
	suite.Equal("", value)

	match = suite.find("GET", "/assets", true)
	suite.Equal("", match.Params.Get("filepath"))
}

func (suite *RouterTestSuite) TestCatchAllOnlyPattern() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/**:rest", "R"))

	match := suite.find("GET", "/", true)
	suite.Equal("", match.Params.Get("rest"))

	match = suite.find("GET", "/a/b/c", true)
	suite.Equal("a/b/c", match.Params.Get("rest"))
}

func (suite *RouterTestSuite) TestAnyMethod() {
	require.NoError(suite.T(), suite.idx.AddRoute(AnyMethod, "/any/path", "X"))

	suite.Equal("X", *suite.find("GET", "/any/path", false).Payload)
	suite.Equal("X", *suite.find("POST", "/any/path", false).Payload)
	suite.Equal("X", *suite.find("GET", "/any/path", true).Payload)
}

func (suite *RouterTestSuite) TestConcreteMethodBeatsAnyMethod() {
	require.NoError(suite.T(), suite.idx.AddRoute(AnyMethod, "/thing", "any"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/thing", "get"))

	suite.Equal("get", *suite.find("GET", "/thing", true).Payload)
	suite.Equal("any", *suite.find("DELETE", "/thing", true).Payload)
}

func (suite *RouterTestSuite) TestPriorityOrder() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/config", "B"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/config/:key", "K"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/config/**:path", "W"))

	// Param beats wildcard.
	suite.Equal("K", *suite.find("GET", "/config/timeout", true).Payload)

	matches := suite.idx.FindAllRoutes("GET", "/config/timeout", true)
	require.Len(suite.T(), matches, 2)
	suite.Equal("K", *matches[0].Payload)
	suite.Equal("timeout", matches[0].Params.Get("key"))
	suite.Equal("W", *matches[1].Payload)
	suite.Equal("timeout", matches[1].Params.Get("path"))
}

func (suite *RouterTestSuite) TestStaticBeatsParam() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/users/me", "me"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/users/:id", "byID"))

	suite.Equal("me", *suite.find("GET", "/users/me", true).Payload)
	suite.Equal("byID", *suite.find("GET", "/users/42", true).Payload)

	matches := suite.idx.FindAllRoutes("GET", "/users/me", true)
	require.Len(suite.T(), matches, 2)
	suite.Equal("me", *matches[0].Payload)
	suite.Equal("byID", *matches[1].Payload)
	suite.Equal("me", matches[1].Params.Get("id"))
}

func (suite *RouterTestSuite) TestFindAllFirstElementAgreesWithFind() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/a/b", "static"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/a/:x", "param"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/a/**:rest", "wild"))

	for _, path := range []string{"/a/b", "/a/c", "/a/b/c", "/missing"} {
		matches := suite.idx.FindAllRoutes("GET", path, true)
		match, err := suite.idx.FindRoute("GET", path, true)
		if err != nil {
			suite.Empty(matches, "path %s", path)
			continue
		}
		require.NotEmpty(suite.T(), matches, "path %s", path)
		suite.Equal(match.Payload, matches[0].Payload, "path %s", path)
	}
}

func (suite *RouterTestSuite) TestCaptureModesAgree() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/users/:id", "U"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/health", "ok"))

	for _, path := range []string{"/users/7", "/health"} {
		plain := suite.find("GET", path, false)
		captured := suite.find("GET", path, true)
		suite.Same(plain.Payload, captured.Payload, "payload identity for %s", path)
		suite.Nil(plain.Params)
		suite.NotNil(captured.Params)
	}
}

func (suite *RouterTestSuite) TestDualStorageOfStaticRoutes() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/api/users", "list"))

	// The trie sees purely static routes too, so enumeration agrees
	// with the fast path.
	matches := suite.idx.FindAllRoutes("GET", "/api/users", false)
	require.Len(suite.T(), matches, 1)
	suite.Equal("list", *matches[0].Payload)
}

func (suite *RouterTestSuite) TestPayloadReplacement() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/home", "old"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/home", "new"))

	suite.Equal("new", *suite.find("GET", "/home", false).Payload)
	suite.Equal(1, suite.idx.Len())
}

func (suite *RouterTestSuite) TestRemoveRoute() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/users/:id", "U"))
	require.NoError(suite.T(), suite.idx.RemoveRoute("GET", "/users/:id"))

	suite.notFound("GET", "/users/123")
	suite.Zero(suite.idx.Len())

	err := suite.idx.RemoveRoute("GET", "/users/:id")
	assert.ErrorIs(suite.T(), err, ErrRouteNotFound)
}

func (suite *RouterTestSuite) TestRemoveByKindIgnoresNames() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/users/:id", "U"))
	require.NoError(suite.T(), suite.idx.RemoveRoute("GET", "/users/:anything"))
	suite.notFound("GET", "/users/123")
}

func (suite *RouterTestSuite) TestRemoveStaticClearsFastPath() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/health", "ok"))
	require.NoError(suite.T(), suite.idx.RemoveRoute("GET", "/health"))

	_, err := suite.idx.FindRoute("GET", "/health", false)
	assert.ErrorIs(suite.T(), err, ErrRouteNotFound)
	suite.Empty(suite.idx.FindAllRoutes("GET", "/health", false))
}

func (suite *RouterTestSuite) TestAddRemoveRoundTrip() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/keep", "keep"))

	for _, pattern := range []string{"/users/:id", "/search/:q?", "/assets/**:fp", "/static/path"} {
		require.NoError(suite.T(), suite.idx.AddRoute("GET", pattern, "tmp"))
		require.NoError(suite.T(), suite.idx.RemoveRoute("GET", pattern))
	}

	suite.Equal(1, suite.idx.Len())
	suite.Equal("keep", *suite.find("GET", "/keep", true).Payload)
	suite.notFound("GET", "/users/1")
	suite.notFound("GET", "/search")
	suite.notFound("GET", "/assets/x")
	suite.notFound("GET", "/static/path")
}

func (suite *RouterTestSuite) TestInvalidPatternDoesNotMutate() {
	err := suite.idx.AddRoute("GET", "/a/:b?/c", "bad")
	require.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, ErrInvalidPattern)
	suite.Zero(suite.idx.Len())

	err = suite.idx.RemoveRoute("GET", "/a//b")
	assert.ErrorIs(suite.T(), err, ErrInvalidPattern)
}

func (suite *RouterTestSuite) TestMethodCaseSensitivity() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/home", "H"))
	suite.notFound("get", "/home")

	normalized := New[string](WithMethodNormalization())
	require.NoError(suite.T(), normalized.AddRoute("get", "/home", "H"))
	match, err := normalized.FindRoute("Get", "/home", false)
	require.NoError(suite.T(), err)
	suite.Equal("H", *match.Payload)
}

func (suite *RouterTestSuite) TestRootAndEmptyPath() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/", "root"))

	suite.Equal("root", *suite.find("GET", "/", true).Payload)
	suite.Equal("root", *suite.find("GET", "", true).Payload)
}

func (suite *RouterTestSuite) TestTrailingSlashIsDistinct() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/home", "H"))
	suite.notFound("GET", "/home/")

	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/home/", "HS"))
	suite.Equal("HS", *suite.find("GET", "/home/", true).Payload)
	suite.Equal("H", *suite.find("GET", "/home", true).Payload)
}

func (suite *RouterTestSuite) TestAnonymousCapturesStayHidden() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/x/*", "wild"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/dl/**", "all"))

	match := suite.find("GET", "/x/anything", true)
	suite.Equal("wild", *match.Payload)
	suite.Equal(0, match.Params.Len())

	match = suite.find("GET", "/dl/a/b", true)
	suite.Equal("all", *match.Payload)
	suite.Equal(0, match.Params.Len())
}

func (suite *RouterTestSuite) TestParamNameLastInsertWinsThroughLookup() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/users/:id", "U"))
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/users/:name/posts", "P"))

	// Pins the shared-slot rename: the earlier route now captures
	// under the later name.
	match := suite.find("GET", "/users/42", true)
	suite.Equal("U", *match.Payload)
	suite.False(match.Params.Has("id"))
	suite.Equal("42", match.Params.Get("name"))
}

func (suite *RouterTestSuite) TestParameterSubstitutionReproducesPath() {
	require.NoError(suite.T(), suite.idx.AddRoute("GET", "/users/:id/posts/:postID", "P"))

	path := "/users/42/posts/7"
	match := suite.find("GET", path, true)

	rebuilt := match.Pattern
	for _, key := range match.Params.Keys() {
		rebuilt = strings.Replace(rebuilt, ":"+key, match.Params.Get(key), 1)
	}
	suite.Equal(path, rebuilt)
}

func (suite *RouterTestSuite) TestDiagnosticsEvents() {
	var events []DiagnosticEvent
	idx := New[string](WithDiagnostics(DiagnosticHandlerFunc(func(e DiagnosticEvent) {
		events = append(events, e)
	})))

	require.NoError(suite.T(), idx.AddRoute("GET", "/users/:id", "U"))
	// Same trie slot under a new name: a rename, and a replacement of
	// the terminal the earlier pattern installed.
	require.NoError(suite.T(), idx.AddRoute("GET", "/users/:name", "U2"))
	require.NoError(suite.T(), idx.AddRoute("GET", "/dl/**", "D"))

	kinds := make([]DiagnosticKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	suite.Equal([]DiagnosticKind{DiagParamNameOverwritten, DiagRouteReplaced, DiagAnonymousCatchAll}, kinds)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
