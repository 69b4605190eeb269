// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package result contains the results from various operations.
package result

// Delete is a result from a Delete command.
type Delete struct {
	N int64 `bson:"n"`
}

// Insert is a result from an Insert command.
type Insert struct {
	N int64 `bson:"n"`
}

// Update is a result from an Update command.
type Update struct {
	MatchedCount  int64 `bson:"n"`
	ModifiedCount int64 `bson:"nModified"`
}
