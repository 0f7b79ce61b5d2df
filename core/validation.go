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


package core

import (
	"fmt"
	"math"
)

// ValidateTopicEntry validates a TopicEntry according to domain rules.
//
// Validation rules:
//   - TopicID must not be negative
//   - Embedding must not be empty
//   - Embedding values must be finite
//
// NOT validated:
//   - Keywords (a topic may have no keywords)
//   - Embedding dimension (checked against the rest of the catalog)
func ValidateTopicEntry(entry *TopicEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidTopicEntry)
	}

	if entry.TopicID < 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidTopicEntry, ErrNegativeTopicID, entry.TopicID)
	}

	if len(entry.Embedding) == 0 {
		return fmt.Errorf("%w: topic %d: %w", ErrInvalidTopicEntry, entry.TopicID, ErrEmptyEmbedding)
	}

	for _, v := range entry.Embedding {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: topic %d: %w", ErrInvalidTopicEntry, entry.TopicID, ErrNonFiniteEmbedding)
		}
	}

	return nil
}

