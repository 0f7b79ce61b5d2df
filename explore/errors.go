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

package explore

import "errors"

var (
	// ErrTopicFinderRequired is returned when a topic finder is not provided.
	ErrTopicFinderRequired = errors.New("topic finder required")

	// ErrKeywordSourceRequired is returned when a keyword source is not provided.
	ErrKeywordSourceRequired = errors.New("keyword source required")

	// ErrSamplerRequired is returned when a sampler is not provided.
	ErrSamplerRequired = errors.New("sampler required")

	// ErrResolverRequired is returned when fuzzy name matching is enabled without a resolver.
	ErrResolverRequired = errors.New("name resolver required")

	// ErrStoreRequired is returned when choices are loaded without a store.
	ErrStoreRequired = errors.New("speech store required")

	// ErrInvalidTopN is returned when the topic count is not positive.
	ErrInvalidTopN = errors.New("topic count must be greater than 0")
)
