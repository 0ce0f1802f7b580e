// Package entity holds the loaded stick-figure records and the one
// transformation applied to them after load.
//
// An [Entity] is an identifier plus a fixed vector of six numeric
// attributes. Attribute indices are positional: 0/1, 2/3 and 4/5 form the
// three coordinate pairs a session can lay out by. The fixed-size [Vars]
// array makes the arity invariant part of the type, so code downstream of
// [Decode] never has to check it.
//
// # Loading
//
// [Load] reads a JSON document from a local path or an http(s) URL:
//
//	[
//	  {"id": "A", "vars": [0, 0, 10, 10, 20, 20]},
//	  {"id": 2,   "vars": [10, 10, 0, 0, 30, 30]}
//	]
//
// Any failure (unreachable source, malformed JSON, wrong arity, non-numeric
// values, duplicate or empty ids, empty document) is reported as a
// LOAD_FAILED error from pkg/errors. There is no retry and no partial load.
//
// # Rotation
//
// [Rotate] returns a new [Collection] in which the entity at position i
// holds the attribute vector previously held by position (i+1) mod n. Ids
// never move. The input collection is not modified.
package entity
