package recon

// approvalState is the closed set of business states recognized in a
// record's status fields. Modeling the loose upstream vocabulary as an
// enum keeps the default-to-pending rule in one auditable place.
type approvalState int

const (
	stateUnknown approvalState = iota
	statePending
	stateApproved
)

// categorize assigns a matched pair its disposition bucket. Rules are
// evaluated top-down, first match wins:
//
//  1. any discrepancy           -> DISPUTED
//  2. either side approved      -> APPROVED
//  3. pending/requires approval -> PENDING_APPROVAL
//  4. unrecognized status       -> PENDING_APPROVAL
//
// An unrecognized status is never treated as approved.
func categorize(pair MatchPair) Category {
	if !pair.Clean() {
		return CategoryDisputed
	}

	left := approvalStateOf(pair.Left)
	right := approvalStateOf(pair.Right)

	if left == stateApproved || right == stateApproved {
		return CategoryApproved
	}
	return CategoryPendingApproval
}

// approvalStateOf scans a record's status fields for a recognized
// business state. Approved wins over pending when both appear.
func approvalStateOf(rec LedgerRecord) approvalState {
	state := stateUnknown
	for _, value := range rec.StatusFields {
		switch parseApprovalState(value) {
		case stateApproved:
			return stateApproved
		case statePending:
			state = statePending
		}
	}
	return state
}

// parseApprovalState maps one upstream status string onto the enum.
func parseApprovalState(raw string) approvalState {
	switch NormalizeKey(raw) {
	case "approved", "paid", "settled":
		return stateApproved
	case "pending", "pending_approval", "submitted", "requires_approval", "awaiting_approval":
		return statePending
	default:
		return stateUnknown
	}
}
