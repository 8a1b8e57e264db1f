package types

// LocalObject is one SDF object mirrored from the project's Objects
// directory into the local cache.
type LocalObject struct {
	Type     ObjectType `json:"type"`
	ID       ScriptID   `json:"id"`
	XMLFile  string     `json:"xmlFile"`
	JSONFile string     `json:"jsonFile"`
	// Deployed is nil until a verify run has compared the object
	// against the account.
	Deployed *bool    `json:"deployed,omitempty"`
	Checksum Checksum `json:"checksum,omitempty"`
}

// IsDeployed reports whether a verify run found the object on the account.
func (o LocalObject) IsDeployed() bool { return o.Deployed != nil && *o.Deployed }

// IsUndeployed reports whether a verify run found the object missing.
func (o LocalObject) IsUndeployed() bool { return o.Deployed != nil && !*o.Deployed }

// ServerObject is one object reported by "suitecloud object:list".
type ServerObject struct {
	Type ObjectType `json:"type"`
	ID   ScriptID   `json:"id"`
}

// ObjectFile is the per-object JSON document written next to the index:
// the index record plus the normalized XML body.
type ObjectFile struct {
	LocalObject
	Object map[string]any `json:"object"`
}

// LocalIndex is the on-disk envelope of the local object index.
type LocalIndex struct {
	Objects []LocalObject `json:"objects"`
}

// ServerIndex is the on-disk envelope of the server object index.
type ServerIndex struct {
	Objects []ServerObject `json:"objects"`
}

// FieldValue is one id/value pair passed to UpdateObjectFields.
type FieldValue struct {
	ID    ScriptID
	Value any
}

// Bool returns a pointer to v, for LocalObject.Deployed.
func Bool(v bool) *bool { return &v }
