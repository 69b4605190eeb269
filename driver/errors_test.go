// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

func marshal(t *testing.T, v interface{}) bsoncore.Document {
	t.Helper()
	doc, err := bson.Marshal(v)
	require.NoError(t, err)
	return doc
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	for _, tcase := range []struct {
		name string
		want bool
		err1 error
		err2 error
	}{
		{
			"Error with same codes",
			true,
			Error{Code: 1},
			Error{Code: 1},
		},
		{
			"Error with different codes",
			false,
			Error{Code: 1},
			Error{Code: 2},
		},
		{
			"Error with different types",
			false,
			Error{Code: 1},
			errors.New("foo"),
		},
		{
			"WriteError with same codes",
			true,
			WriteError{Code: 1},
			WriteError{Code: 1},
		},
		{
			"WriteError with different codes",
			false,
			WriteError{Code: 1},
			WriteError{Code: 2},
		},
		{
			"WriteConcernError with same codes",
			true,
			WriteConcernError{Code: 1},
			WriteConcernError{Code: 1},
		},
		{
			"WriteConcernError with different codes",
			false,
			WriteConcernError{Code: 1},
			WriteConcernError{Code: 2},
		},
		{
			"WriteCommandError with same WriteConcernError and nil WriteErrors",
			true,
			WriteCommandError{WriteConcernError: &WriteConcernError{Code: 1}},
			WriteCommandError{WriteConcernError: &WriteConcernError{Code: 1}},
		},
		{
			"WriteCommandError with different WriteConcernError and nil WriteErrors",
			false,
			WriteCommandError{WriteConcernError: &WriteConcernError{Code: 1}},
			WriteCommandError{WriteConcernError: &WriteConcernError{Code: 2}},
		},
		{
			"WriteCommandError with same WriteConcernError and same WriteErrors",
			true,
			WriteCommandError{
				WriteConcernError: &WriteConcernError{Code: 1},
				WriteErrors:       []WriteError{{Code: 1}},
			},
			WriteCommandError{
				WriteConcernError: &WriteConcernError{Code: 1},
				WriteErrors:       []WriteError{{Code: 1}},
			},
		},
		{
			"WriteCommandError with same WriteConcernError and different WriteErrors",
			false,
			WriteCommandError{
				WriteConcernError: &WriteConcernError{Code: 1},
				WriteErrors:       []WriteError{{Code: 1}},
			},
			WriteCommandError{
				WriteConcernError: &WriteConcernError{Code: 1},
				WriteErrors:       []WriteError{{Code: 2}},
			},
		},
		{
			"WriteCommandError with nil WriteConcernError and same WriteErrors",
			true,
			WriteCommandError{
				WriteErrors: []WriteError{{Code: 1}},
			},
			WriteCommandError{
				WriteErrors: []WriteError{{Code: 1}},
			},
		},
		{
			"WriteCommandError with different types",
			false,
			WriteCommandError{WriteConcernError: &WriteConcernError{Code: 1}},
			errors.New("foo"),
		},
	} {
		tcase := tcase

		t.Run(tcase.name, func(t *testing.T) {
			t.Parallel()

			if got := errors.Is(tcase.err1, tcase.err2); got != tcase.want {
				t.Errorf("Expected %v, got %v", tcase.want, got)
			}
		})
	}
}

func TestExtractErrorFromServerResponse(t *testing.T) {
	t.Run("successful response returns nil", func(t *testing.T) {
		doc := marshal(t, bson.D{
			{Key: "ok", Value: 1.0},
			{Key: "n", Value: int32(1)},
		})
		require.NoError(t, ExtractErrorFromServerResponse(doc))
	})

	t.Run("ok encoded as int32 and boolean", func(t *testing.T) {
		require.NoError(t, ExtractErrorFromServerResponse(marshal(t, bson.D{{Key: "ok", Value: int32(1)}})))
		require.NoError(t, ExtractErrorFromServerResponse(marshal(t, bson.D{{Key: "ok", Value: true}})))
	})

	t.Run("command failure", func(t *testing.T) {
		doc := marshal(t, bson.D{
			{Key: "ok", Value: 0.0},
			{Key: "errmsg", Value: "operation was interrupted"},
			{Key: "code", Value: int32(11601)},
			{Key: "codeName", Value: "Interrupted"},
		})

		err := ExtractErrorFromServerResponse(doc)
		require.Error(t, err)

		var cmdErr Error
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, int32(11601), cmdErr.Code)
		assert.Equal(t, "Interrupted", cmdErr.Name)
		assert.Equal(t, "operation was interrupted", cmdErr.Message)
	})

	t.Run("command failure without errmsg gets a default message", func(t *testing.T) {
		err := ExtractErrorFromServerResponse(marshal(t, bson.D{{Key: "ok", Value: 0.0}}))

		var cmdErr Error
		require.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, "command failed", cmdErr.Message)
	})

	t.Run("error labels", func(t *testing.T) {
		doc := marshal(t, bson.D{
			{Key: "ok", Value: 0.0},
			{Key: "errmsg", Value: "transaction aborted"},
			{Key: "errorLabels", Value: bson.A{"TransientTransactionError"}},
		})

		err := ExtractErrorFromServerResponse(doc)

		var cmdErr Error
		require.True(t, errors.As(err, &cmdErr))
		assert.True(t, cmdErr.HasErrorLabel("TransientTransactionError"))
		assert.False(t, cmdErr.HasErrorLabel("UnknownTransactionCommitResult"))
	})

	t.Run("write errors are collected in order", func(t *testing.T) {
		doc := marshal(t, bson.D{
			{Key: "ok", Value: 1.0},
			{Key: "n", Value: int32(0)},
			{Key: "writeErrors", Value: bson.A{
				bson.D{
					{Key: "index", Value: int32(0)},
					{Key: "code", Value: int32(11000)},
					{Key: "errmsg", Value: "duplicate key"},
				},
				bson.D{
					{Key: "index", Value: int32(1)},
					{Key: "code", Value: int32(2)},
					{Key: "errmsg", Value: "bad value"},
				},
			}},
		})

		err := ExtractErrorFromServerResponse(doc)
		require.Error(t, err)

		var writeCmdErr WriteCommandError
		require.True(t, errors.As(err, &writeCmdErr))
		assert.Nil(t, writeCmdErr.WriteConcernError)

		want := WriteErrors{
			{Index: 0, Code: 11000, Message: "duplicate key"},
			{Index: 1, Code: 2, Message: "bad value"},
		}
		if diff := cmp.Diff(want, writeCmdErr.WriteErrors); diff != "" {
			t.Errorf("write errors mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("write concern error details are preserved", func(t *testing.T) {
		details := bson.D{{Key: "writeConcern", Value: bson.D{{Key: "w", Value: int32(2)}}}}
		doc := marshal(t, bson.D{
			{Key: "ok", Value: 1.0},
			{Key: "n", Value: int32(1)},
			{Key: "writeConcernError", Value: bson.D{
				{Key: "code", Value: int32(100)},
				{Key: "codeName", Value: "UnsatisfiableWriteConcern"},
				{Key: "errmsg", Value: "Not enough data-bearing nodes"},
				{Key: "errInfo", Value: details},
			}},
		})

		err := ExtractErrorFromServerResponse(doc)
		require.Error(t, err)

		var writeCmdErr WriteCommandError
		require.True(t, errors.As(err, &writeCmdErr))
		require.NotNil(t, writeCmdErr.WriteConcernError)
		assert.Equal(t, int64(100), writeCmdErr.WriteConcernError.Code)
		assert.Equal(t, "UnsatisfiableWriteConcern", writeCmdErr.WriteConcernError.Name)
		assert.Equal(t, marshal(t, details), writeCmdErr.WriteConcernError.Details)
	})

	t.Run("malformed document", func(t *testing.T) {
		err := ExtractErrorFromServerResponse(bsoncore.Document{0x5, 0x0})

		var respErr ResponseError
		require.True(t, errors.As(err, &respErr))
	})
}
