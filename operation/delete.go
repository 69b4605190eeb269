// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package operation contains the write operations the driver can perform.
// Each operation assembles its own command and interprets its own reply; the
// transport exchanging those documents with a server lives elsewhere.
package operation

import (
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"

	"github.com/ikmak/mongocore/driver"
	"github.com/ikmak/mongocore/driver/description"
	"github.com/ikmak/mongocore/result"
	"github.com/ikmak/mongocore/writeconcern"
)

// deleteLimit is the number of matching documents a delete statement may
// remove. Removing at most one document and removing every match are the
// only limits the delete command accepts, so they are the only two values
// this type can hold.
type deleteLimit int32

const (
	limitMany deleteLimit = 0
	limitOne  deleteLimit = 1
)

// Delete represents the delete command.
//
// The delete command executes a delete against a collection with a given
// filter and options. A Delete is constructed for a single logical request:
// Build assembles the command once, and HandleResponse interprets the reply
// the transport received for it. Neither call mutates the Delete.
type Delete struct {
	ns           driver.Namespace
	filter       bsoncore.Document
	limit        deleteLimit
	writeConcern *writeconcern.WriteConcern
	collation    bsoncore.Document
	hint         bsoncore.Value
}

var _ driver.Operation[result.Delete] = (*Delete)(nil)

// NewDeleteOne constructs a Delete that removes at most one document
// matching filter from the given namespace.
func NewDeleteOne(ns driver.Namespace, filter bsoncore.Document) *Delete {
	return &Delete{ns: ns, filter: filter, limit: limitOne}
}

// NewDeleteMany constructs a Delete that removes every document matching
// filter from the given namespace.
func NewDeleteMany(ns driver.Namespace, filter bsoncore.Document) *Delete {
	return &Delete{ns: ns, filter: filter, limit: limitMany}
}

// WriteConcern sets the write concern for this operation.
func (d *Delete) WriteConcern(wc *writeconcern.WriteConcern) *Delete {
	d.writeConcern = wc
	return d
}

// Collation specifies a collation to use for string comparisons. This option
// is only valid for servers with wire version 5 or newer.
func (d *Delete) Collation(collation bsoncore.Document) *Delete {
	d.collation = collation
	return d
}

// Hint specifies the index to use, either by name or by specification
// document. This option is only valid for servers with wire version 9 or
// newer and cannot be combined with an unacknowledged write concern.
func (d *Delete) Hint(hint bsoncore.Value) *Delete {
	d.hint = hint
	return d
}

// Build assembles the delete command for the given server. Deletes are
// always routed to a writable server, so the command carries no read
// preference. The output is deterministic: building twice from the same
// Delete yields byte-identical bodies.
func (d *Delete) Build(desc description.SelectedServer) (*driver.Command, error) {
	if err := d.ns.Validate(); err != nil {
		return nil, err
	}
	if len(d.filter) == 0 {
		return nil, errors.New("the Delete operation must have a filter set before Build can be called")
	}
	if d.collation != nil {
		if err := description.CollationSupported(desc.WireVersion); err != nil {
			return nil, err
		}
	}
	if d.hint.Type != bsontype.Type(0) {
		if err := description.HintOnWriteSupported(desc.WireVersion); err != nil {
			return nil, err
		}
		if !d.writeConcern.Acknowledged() {
			return nil, errors.New("the hint option cannot be specified for an unacknowledged write")
		}
	}

	idx, body := bsoncore.AppendDocumentStart(nil)
	body = bsoncore.AppendStringElement(body, "delete", d.ns.Collection)

	aidx, body := bsoncore.AppendArrayElementStart(body, "deletes")
	didx, body := bsoncore.AppendDocumentElementStart(body, "0")
	body = bsoncore.AppendDocumentElement(body, "q", d.filter)
	body = bsoncore.AppendInt32Element(body, "limit", int32(d.limit))
	if d.collation != nil {
		body = bsoncore.AppendDocumentElement(body, "collation", d.collation)
	}
	if d.hint.Type != bsontype.Type(0) {
		body = bsoncore.AppendValueElement(body, "hint", d.hint)
	}
	body, _ = bsoncore.AppendDocumentEnd(body, didx)
	body, _ = bsoncore.AppendArrayEnd(body, aidx)

	if d.writeConcern != nil {
		_, wcDoc, err := d.writeConcern.MarshalBSONValue()
		if err != nil {
			return nil, errors.Wrap(err, "invalid write concern")
		}
		body = bsoncore.AppendDocumentElement(body, "writeConcern", wcDoc)
	}

	// Unordered bulk deletes are a batch-layer concern; a single delete
	// statement is always sent ordered.
	body = bsoncore.AppendBooleanElement(body, "ordered", true)
	body, _ = bsoncore.AppendDocumentEnd(body, idx)

	return &driver.Command{
		Name:     "delete",
		Database: d.ns.DB,
		Body:     body,
	}, nil
}

// HandleResponse parses the server's reply to a delete command. Replies
// whose fields fall outside the recognized delete reply shape are rejected
// with a ResponseError. A write concern failure takes precedence over
// per-document write errors, since the durability failure is reported even
// if the write itself succeeded.
func (d *Delete) HandleResponse(resp driver.CommandResponse) (result.Delete, error) {
	var res result.Delete

	if err := resp.Document.Validate(); err != nil {
		return res, driver.NewCommandResponseError("malformed server response", err)
	}

	err := driver.ExtractErrorFromServerResponse(resp.Document)
	var writeCmdErr driver.WriteCommandError
	if err != nil && !errors.As(err, &writeCmdErr) {
		// The server rejected the command outright (ok != 1); surface the
		// command error as extracted.
		return res, err
	}

	elems, _ := resp.Document.Elements()
	var sawOK, sawN bool
	for _, elem := range elems {
		switch elem.Key() {
		case "ok":
			sawOK = true
		case "n":
			sawN = true
		case "writeErrors", "writeConcernError":
		default:
			return res, driver.NewCommandResponseError(
				fmt.Sprintf("server response contained unrecognized field %q", elem.Key()), nil)
		}
	}
	if !sawOK || !sawN {
		return res, driver.NewCommandResponseError("server response is missing the ok or n field", nil)
	}

	if writeCmdErr.WriteConcernError != nil {
		return res, driver.WriteCommandError{
			WriteConcernError: writeCmdErr.WriteConcernError,
			Labels:            writeCmdErr.Labels,
		}
	}
	if len(writeCmdErr.WriteErrors) > 0 {
		// Only the first write error is surfaced here; aggregating across a
		// batch belongs to the bulk write layer.
		return res, driver.WriteCommandError{
			WriteErrors: writeCmdErr.WriteErrors[:1],
			Labels:      writeCmdErr.Labels,
		}
	}

	n, okay := resp.Document.Lookup("n").AsInt64OK()
	if !okay {
		return res, driver.NewCommandResponseError("server response contained a non-numeric n field", nil)
	}
	res.N = n

	return res, nil
}
