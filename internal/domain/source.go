package domain

// Source records which rule put a test path into the selection
type Source string

const (
	SourceMapping  Source = "mapping"  // mapped from a changed source file
	SourceChanged  Source = "changed"  // the test file itself changed
	SourceAdvisory Source = "advisory" // suggested by the LLM and verified on disk
)

// AdvisoryStatus describes how the advisory call ended
type AdvisoryStatus string

const (
	AdvisoryOK          AdvisoryStatus = "ok"          // response parsed, candidates extracted (possibly none)
	AdvisoryEmpty       AdvisoryStatus = "empty"       // response carried no usable text
	AdvisoryUnavailable AdvisoryStatus = "unavailable" // transport, auth, timeout or decode failure
	AdvisoryDisabled    AdvisoryStatus = "disabled"    // provider none
)
