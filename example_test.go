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

import "fmt"

func ExampleRouter_FindRoute() {
	idx := New[string]()

	_ = idx.AddRoute("GET", "/users/:id", "user-detail")
	_ = idx.AddRoute("GET", "/assets/**:filepath", "static-assets")

	match, err := idx.FindRoute("GET", "/users/123", true)
	if err != nil {
		panic(err)
	}
	fmt.Println(*match.Payload, match.Params.Get("id"))

	match, _ = idx.FindRoute("GET", "/assets/css/site.css", true)
	fmt.Println(*match.Payload, match.Params.Get("filepath"))

	// Output:
	// user-detail 123
	// static-assets css/site.css
}

func ExampleRouter_FindAllRoutes() {
	idx := New[string]()

	_ = idx.AddRoute("GET", "/config/:key", "by-key")
	_ = idx.AddRoute("GET", "/config/**:path", "fallback")

	for _, match := range idx.FindAllRoutes("GET", "/config/timeout", true) {
		fmt.Println(*match.Payload)
	}

	// Output:
	// by-key
	// fallback
}

func ExampleAnyMethod() {
	idx := New[string]()

	_ = idx.AddRoute(AnyMethod, "/webhook", "any")
	_ = idx.AddRoute("POST", "/webhook", "post-only")

	for _, method := range []string{"GET", "POST"} {
		match, _ := idx.FindRoute(method, "/webhook", false)
		fmt.Println(method, *match.Payload)
	}

	// Output:
	// GET any
	// POST post-only
}

func ExampleRouter_Routes() {
	idx := New[string]()

	_ = idx.AddRoute("GET", "/api/users", "list")
	_ = idx.AddRoute("GET", "/api/users/:id", "detail")

	for _, info := range idx.Routes() {
		fmt.Printf("%s %s static=%t params=%d\n", info.Method, info.Pattern, info.IsStatic, info.ParamCount)
	}

	// Output:
	// GET /api/users static=true params=0
	// GET /api/users/:id static=false params=1
}
