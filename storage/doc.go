// Copyright 2025 Poiesic Systems
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


// Package storage provides the relational store abstraction for hansard.
//
// SpeechStore decouples the sampler and the choice lists from a specific
// database. Filters are built from request fields with BuildFilter and
// BuildAnyOf, and rendered per Dialect so values are always bound as
// parameters. Table and column names cannot be parameters, so they are
// checked with ValidIdentifier before being interpolated.
//
//	filters := storage.Filters{
//	    storage.BuildFilter("year", "AND", year, "Any Year"),
//	    storage.BuildFilter("proc_party", "AND", party, "Any Party"),
//	}
//	where, args, err := filters.Where(storage.Postgres)
//	// WHERE 1 = 1 AND year = $1 AND proc_party = $2
//
// The database/sql implementation lives in storage/sqlstore.
package storage
