package types

// ScriptID is the unique identifier of an SDF object within its type.
type ScriptID string

// String returns the string form of the script id.
func (id ScriptID) String() string { return string(id) }

// ObjectType is the SDF record type, taken from the root XML element
// (for example "customrecordtype" or "workflow").
type ObjectType string

// String returns the string form of the object type.
func (t ObjectType) String() string { return string(t) }

// Checksum is a hex-encoded content digest of an object's XML source.
type Checksum string

// String returns the string form of the checksum.
func (c Checksum) String() string { return string(c) }

// Field names a mutable attribute of a cached local object.
type Field string

// FieldDeployed is the only field UpdateObjectFields accepts.
const FieldDeployed Field = "deployed"
