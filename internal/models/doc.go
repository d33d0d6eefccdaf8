// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

/*
Package models defines the wire types shared by the HTTP layer.

Every endpoint answers with an APIResponse envelope. Successful responses
carry their payload in Data and describe how it was produced in Metadata
(query time, whether the feed cache served it, and the dataset snapshot
version). Failed responses carry an APIError with a stable machine-readable
code.

Feed and interest payloads themselves are defined by the recommend package;
this package holds only the envelope and the small health and reload
payloads that have no other natural owner.
*/
package models
