package constants

// NoMatchDocType is the label the backend assigns when classification
// cannot match an uploaded file to any configured document type.
const NoMatchDocType = "NO_MATCH"

// ApprovalFilter selects records by approval state in the review listing.
type ApprovalFilter string

const (
	ApprovalAll         ApprovalFilter = "All"
	ApprovalApproved    ApprovalFilter = "Approved"
	ApprovalNotApproved ApprovalFilter = "Not Approved"
)

// DocTypeAll is the filter value that disables document-type filtering.
const DocTypeAll = "All"
