// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package driver

import (
	"bytes"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// ResponseError is an error parsing the response to a command. It is
// returned when a reply does not match any shape the operation recognizes,
// including replies carrying fields outside the recognized set: an
// unrecognized field may signal a server contract this layer does not yet
// understand, so it is rejected rather than silently ignored.
type ResponseError struct {
	Message string
	Wrapped error
}

// NewCommandResponseError creates a ResponseError.
func NewCommandResponseError(msg string, err error) ResponseError {
	return ResponseError{Message: msg, Wrapped: err}
}

// Error implements the error interface.
func (e ResponseError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Wrapped)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ResponseError) Unwrap() error { return e.Wrapped }

// Error is a command execution error from the database.
type Error struct {
	Code    int32
	Message string
	Name    string
	Labels  []string
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("(%v) %v", e.Name, e.Message)
	}
	return e.Message
}

// Is implements the errors.Is interface. Two Errors match when their codes
// match.
func (e Error) Is(err error) bool {
	if de, ok := err.(Error); ok {
		return e.Code == de.Code
	}
	return false
}

// HasErrorLabel returns true if the error contains the specified label.
func (e Error) HasErrorLabel(label string) bool {
	for _, l := range e.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// WriteError is a non-write concern failure that occurred as a result of a
// write operation. The server reports no code name for these, so CodeName is
// populated only when a later server version starts sending one.
type WriteError struct {
	Index    int64
	Code     int64
	CodeName string
	Message  string
}

// Error implements the error interface.
func (we WriteError) Error() string { return we.Message }

// Is implements the errors.Is interface. Two WriteErrors match when their
// codes match.
func (we WriteError) Is(err error) bool {
	if de, ok := err.(WriteError); ok {
		return we.Code == de.Code
	}
	return false
}

// WriteErrors is a group of non-write concern failures that occurred as a
// result of a write operation.
type WriteErrors []WriteError

// Error implements the error interface.
func (we WriteErrors) Error() string {
	var buf bytes.Buffer
	fmt.Fprint(&buf, "write errors: [")
	for idx, err := range we {
		if idx != 0 {
			fmt.Fprintf(&buf, ", ")
		}
		fmt.Fprintf(&buf, "{%s}", err)
	}
	fmt.Fprint(&buf, "]")
	return buf.String()
}

// WriteConcernError is a write concern failure that occurred as a result of
// a write operation: the write itself may have applied, but the requested
// durability level was not satisfied.
type WriteConcernError struct {
	Name    string
	Code    int64
	Message string
	Details bsoncore.Document
}

// Error implements the error interface.
func (wce WriteConcernError) Error() string {
	if wce.Name != "" {
		return fmt.Sprintf("(%v) %v", wce.Name, wce.Message)
	}
	return wce.Message
}

// Is implements the errors.Is interface. Two WriteConcernErrors match when
// their codes match.
func (wce WriteConcernError) Is(err error) bool {
	if de, ok := err.(WriteConcernError); ok {
		return wce.Code == de.Code
	}
	return false
}

// WriteCommandError is an error for a write command. For a single write
// exactly one of WriteErrors and WriteConcernError is populated; a write
// concern failure takes precedence, since it is reported even when the write
// itself succeeded.
type WriteCommandError struct {
	WriteConcernError *WriteConcernError
	WriteErrors       WriteErrors
	Labels            []string
}

// Error implements the error interface.
func (wce WriteCommandError) Error() string {
	var buf bytes.Buffer
	fmt.Fprint(&buf, "write command error: [")
	fmt.Fprintf(&buf, "{%s}, ", wce.WriteErrors)
	fmt.Fprintf(&buf, "{%s}]", wce.WriteConcernError)
	return buf.String()
}

// Is implements the errors.Is interface. Two WriteCommandErrors match when
// their write concern errors match and their write errors match pairwise.
func (wce WriteCommandError) Is(err error) bool {
	de, ok := err.(WriteCommandError)
	if !ok {
		return false
	}
	if (wce.WriteConcernError == nil) != (de.WriteConcernError == nil) {
		return false
	}
	if wce.WriteConcernError != nil && wce.WriteConcernError.Code != de.WriteConcernError.Code {
		return false
	}
	if len(wce.WriteErrors) != len(de.WriteErrors) {
		return false
	}
	for i := range wce.WriteErrors {
		if wce.WriteErrors[i].Code != de.WriteErrors[i].Code {
			return false
		}
	}
	return true
}

// ExtractErrorFromServerResponse extracts an error from a server response
// document. The reply's fields may arrive in any order. When the reply's ok
// field is not 1 an Error is returned; when the reply carries writeErrors or
// a writeConcernError a WriteCommandError is returned; otherwise the return
// is nil.
func ExtractErrorFromServerResponse(doc bsoncore.Document) error {
	var errmsg, codeName string
	var code int32
	var labels []string
	var ok bool
	var wcError WriteCommandError

	elems, err := doc.Elements()
	if err != nil {
		return NewCommandResponseError("malformed server response", err)
	}

	for _, elem := range elems {
		switch elem.Key() {
		case "ok":
			switch elem.Value().Type {
			case bsontype.Int32:
				if elem.Value().Int32() == 1 {
					ok = true
				}
			case bsontype.Int64:
				if elem.Value().Int64() == 1 {
					ok = true
				}
			case bsontype.Double:
				if elem.Value().Double() == 1 {
					ok = true
				}
			case bsontype.Boolean:
				if elem.Value().Boolean() {
					ok = true
				}
			}
		case "errmsg":
			if str, okay := elem.Value().StringValueOK(); okay {
				errmsg = str
			}
		case "codeName":
			if str, okay := elem.Value().StringValueOK(); okay {
				codeName = str
			}
		case "code":
			if c, okay := elem.Value().Int32OK(); okay {
				code = c
			}
		case "errorLabels":
			if arr, okay := elem.Value().ArrayOK(); okay {
				vals, err := arr.Values()
				if err != nil {
					continue
				}
				for _, val := range vals {
					if str, okay := val.StringValueOK(); okay {
						labels = append(labels, str)
					}
				}
			}
		case "writeErrors":
			arr, okay := elem.Value().ArrayOK()
			if !okay {
				break
			}
			vals, err := arr.Values()
			if err != nil {
				continue
			}
			for _, val := range vals {
				var we WriteError
				doc, okay := val.DocumentOK()
				if !okay {
					continue
				}
				if index, exists := doc.Lookup("index").AsInt64OK(); exists {
					we.Index = index
				}
				if code, exists := doc.Lookup("code").AsInt64OK(); exists {
					we.Code = code
				}
				if name, exists := doc.Lookup("codeName").StringValueOK(); exists {
					we.CodeName = name
				}
				if msg, exists := doc.Lookup("errmsg").StringValueOK(); exists {
					we.Message = msg
				}
				wcError.WriteErrors = append(wcError.WriteErrors, we)
			}
		case "writeConcernError":
			doc, okay := elem.Value().DocumentOK()
			if !okay {
				break
			}
			wcError.WriteConcernError = new(WriteConcernError)
			if code, exists := doc.Lookup("code").AsInt64OK(); exists {
				wcError.WriteConcernError.Code = code
			}
			if name, exists := doc.Lookup("codeName").StringValueOK(); exists {
				wcError.WriteConcernError.Name = name
			}
			if msg, exists := doc.Lookup("errmsg").StringValueOK(); exists {
				wcError.WriteConcernError.Message = msg
			}
			if info, exists := doc.Lookup("errInfo").DocumentOK(); exists {
				wcError.WriteConcernError.Details = info
			}
		}
	}

	if !ok {
		if errmsg == "" {
			errmsg = "command failed"
		}

		return Error{
			Code:    code,
			Message: errmsg,
			Name:    codeName,
			Labels:  labels,
		}
	}

	if len(wcError.WriteErrors) > 0 || wcError.WriteConcernError != nil {
		wcError.Labels = labels
		return wcError
	}

	return nil
}
