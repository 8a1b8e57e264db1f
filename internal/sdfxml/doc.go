// Package sdfxml normalizes SDF object XML into JSON-compatible maps.
//
// Attributes are merged into their element beside child elements, single
// children stay scalars and only repeated children become arrays. Element
// text that sits next to attributes is kept under the "#text" key. The root
// element name is the object type and its scriptid is the object id.
package sdfxml
