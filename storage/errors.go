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


package storage

import "errors"

var (
	// ErrStoreQuery indicates that a query against the speech store failed.
	// It is recoverable per request.
	ErrStoreQuery = errors.New("store query failed")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidIdentifier indicates a table or column name that cannot be
	// safely interpolated into SQL.
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")

	// ErrInvalidOperator indicates a clause joined by something other than AND or OR.
	ErrInvalidOperator = errors.New("invalid clause operator")

	// ErrInvalidQuery indicates invalid query parameters.
	ErrInvalidQuery = errors.New("invalid query parameters")
)
