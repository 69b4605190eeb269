// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package description

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionRangeIncludes(t *testing.T) {
	vr := NewVersionRange(2, 6)

	assert.True(t, vr.Includes(2))
	assert.True(t, vr.Includes(4))
	assert.True(t, vr.Includes(6))
	assert.False(t, vr.Includes(1))
	assert.False(t, vr.Includes(7))
}

func TestVersionRangeString(t *testing.T) {
	assert.Equal(t, "[2, 6]", NewVersionRange(2, 6).String())
}

func TestCollationSupported(t *testing.T) {
	require.NoError(t, CollationSupported(nil))
	require.NoError(t, CollationSupported(&VersionRange{Min: 0, Max: 5}))
	require.Error(t, CollationSupported(&VersionRange{Min: 0, Max: 4}))
}

func TestHintOnWriteSupported(t *testing.T) {
	require.NoError(t, HintOnWriteSupported(nil))
	require.NoError(t, HintOnWriteSupported(&VersionRange{Min: 0, Max: 9}))
	require.Error(t, HintOnWriteSupported(&VersionRange{Min: 0, Max: 8}))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "RSPrimary", RSPrimary.String())
	assert.Equal(t, "Mongos", Mongos.String())
	assert.Equal(t, "Unknown", ServerKind(0).String())

	assert.Equal(t, "Single", Single.String())
	assert.Equal(t, "Sharded", Sharded.String())
	assert.Equal(t, "Unknown", TopologyKind(0).String())
}
