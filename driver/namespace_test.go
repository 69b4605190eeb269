// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceValidate(t *testing.T) {
	testCases := []struct {
		name    string
		db      string
		coll    string
		wantErr bool
	}{
		{"valid", "test_db", "test_coll", false},
		{"empty database", "", "test_coll", true},
		{"empty collection", "test_db", "", true},
		{"database with space", "test db", "test_coll", true},
		{"database with dot", "test.db", "test_coll", true},
		{"collection with dot", "test_db", "test.coll", false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := NewNamespace(tc.db, tc.coll).Validate()
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseNamespace(t *testing.T) {
	t.Run("splits on the first dot", func(t *testing.T) {
		ns, err := ParseNamespace("test_db.test.coll")
		require.NoError(t, err)
		assert.Equal(t, "test_db", ns.DB)
		assert.Equal(t, "test.coll", ns.Collection)
	})

	t.Run("requires a dot", func(t *testing.T) {
		_, err := ParseNamespace("test_db")
		require.Error(t, err)
	})

	t.Run("rejects an invalid result", func(t *testing.T) {
		_, err := ParseNamespace(".test_coll")
		require.Error(t, err)
	})
}

func TestNamespaceFullName(t *testing.T) {
	ns := NewNamespace("test_db", "test_coll")
	assert.Equal(t, "test_db.test_coll", ns.FullName())
}
