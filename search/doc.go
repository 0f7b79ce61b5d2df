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


// Package search ranks catalog topics against free-text queries.
//
// Queries are encoded with an ai.Embedder and compared to every catalog
// entry by cosine similarity. Because catalog rows are stored L2-normalized
// in one contiguous matrix, ranking is a single matrix-vector product.
// Retriever splits that product into shards on an ants worker pool once
// the catalog is large enough to benefit.
//
// Ranking never fails for lack of a good match: a small catalog yields
// fewer results and an empty catalog yields none.
//
// # Usage
//
//	r, err := search.NewRetriever(cat, provider.Embedder())
//	if err != nil {
//	    return err
//	}
//	defer r.Release()
//
//	topics, err := r.FindTopics(ctx, "school funding", 5)
package search
