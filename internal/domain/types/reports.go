package types

// ScanSummary describes one pass of the local object scanner.
type ScanSummary struct {
	Objects    int
	Unexpected []string          // non-XML entries that were skipped
	Failed     map[string]string // XML file -> error text
}

// VerifyReport is the outcome of comparing local objects against the
// objects listed on the account.
type VerifyReport struct {
	ServerCount int
	Deployed    []ScriptID
	Undeployed  []ScriptID
	// Imported is true when the deployed objects were re-imported.
	Imported bool
	// Skipped is true when the shell was busy and the run did nothing.
	Skipped bool
}
