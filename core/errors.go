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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTopicEntry indicates a TopicEntry failed validation.
	ErrInvalidTopicEntry = errors.New("invalid topic entry")

	// ErrEmptyEmbedding indicates the Embedding field is empty.
	ErrEmptyEmbedding = errors.New("embedding cannot be empty")

	// ErrNonFiniteEmbedding indicates an embedding holds NaN or Inf values.
	ErrNonFiniteEmbedding = errors.New("embedding values must be finite")

	// ErrNegativeTopicID indicates a topic identifier below zero.
	ErrNegativeTopicID = errors.New("topic id cannot be negative")
)
