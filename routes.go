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

import "sort"

// RouteInfo describes one registered route for introspection. This is
// used for debugging, documentation generation, and monitoring layers
// built above the index.
type RouteInfo struct {
	Method     string // Method key; AnyMethod ("") matches any method
	Pattern    string // Pattern string as registered (/users/:id)
	IsStatic   bool   // True when every segment is a literal
	ParamCount int    // Number of named captures in the pattern
}

// Routes returns information about every registered route, sorted by
// pattern then method. Routes stored at more than one terminal (optional
// parameters, dual-stored static patterns) are reported once.
func (r *Router[T]) Routes() []RouteInfo {
	r.mu.RLock()
	entries := r.root.collectEntries(make(map[*entry[T]]struct{}), nil)
	r.mu.RUnlock()

	infos := make([]RouteInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, RouteInfo{
			Method:     e.method,
			Pattern:    e.pattern,
			IsStatic:   e.static,
			ParamCount: e.paramCount,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Pattern != infos[j].Pattern {
			return infos[i].Pattern < infos[j].Pattern
		}
		return infos[i].Method < infos[j].Method
	})
	return infos
}
