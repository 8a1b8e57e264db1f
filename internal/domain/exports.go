package domain

import (
	interfaces "suitedeploy/internal/domain/interfaces"
	types "suitedeploy/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ScriptID     = types.ScriptID
	ObjectType   = types.ObjectType
	Checksum     = types.Checksum
	Field        = types.Field
	LocalObject  = types.LocalObject
	ServerObject = types.ServerObject
	ObjectFile   = types.ObjectFile
	LocalIndex   = types.LocalIndex
	ServerIndex  = types.ServerIndex
	FieldValue   = types.FieldValue
	ScanSummary  = types.ScanSummary
	VerifyReport = types.VerifyReport
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	LocalIndexStore     = interfaces.LocalIndexStore
	ServerIndexStore    = interfaces.ServerIndexStore
	ObjectFileStore     = interfaces.ObjectFileStore
	LocalObjectService  = interfaces.LocalObjectService
	ServerObjectService = interfaces.ServerObjectService
	Runner              = interfaces.Runner
	SuiteCloudClient    = interfaces.SuiteCloudClient
	Notifier            = interfaces.Notifier
	View                = interfaces.View
	StatusBar           = interfaces.StatusBar
)

// FieldDeployed is the only field accepted by UpdateObjectFields.
const FieldDeployed = types.FieldDeployed

// Bool returns a pointer to v.
func Bool(v bool) *bool { return types.Bool(v) }
