// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package driver contains the command and response abstractions operations
// are built on. An operation is a pure transformation in both directions: it
// assembles the wire command for a described server, and it interprets the
// decoded reply the transport hands back. Sending bytes, selecting servers,
// and retrying are the transport's concern, not this package's.
package driver

import (
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"

	"github.com/ikmak/mongocore/driver/description"
	"github.com/ikmak/mongocore/readpref"
)

// Command is a single wire-level request document to be sent to the server.
// Body holds the fully-assembled command payload; its keys are exactly those
// the command type defines.
type Command struct {
	Name     string
	Database string
	ReadPref *readpref.ReadPref
	Body     bsoncore.Document
}

// CommandResponse wraps a single decoded reply document. It is a read-only
// view queried by field name; replies carry no guaranteed field order.
type CommandResponse struct {
	Document bsoncore.Document
}

// NewCommandResponse wraps the given reply document in a CommandResponse.
func NewCommandResponse(doc bsoncore.Document) CommandResponse {
	return CommandResponse{Document: doc}
}

// Operation is the contract every command kind satisfies. Build produces the
// command to send to the described server and fails if the operation's
// configuration is incompatible with that server's capabilities. After the
// transport has exchanged the command for a reply, HandleResponse parses the
// reply into the operation's result type R or classifies it as an error.
//
// Both methods are deterministic for fixed inputs and neither mutates the
// operation, so independent operation values may be used concurrently. An
// operation value is used for exactly one Build and one HandleResponse call,
// in that order.
type Operation[R any] interface {
	Build(desc description.SelectedServer) (*Command, error)
	HandleResponse(resp CommandResponse) (R, error)
}
