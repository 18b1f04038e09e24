package metrics

const (
	LabelResource = "resource"
	LabelMethod   = "method"
	LabelRoute    = "route"
	LabelCode     = "code"
	LabelService  = "service"
	LabelOutcome  = "outcome"
)

const (
	namespaceMoveup = "moveup"
)

const (
	subsystemClient      = "client"
	subsystemCache       = "cache"
	subsystemTransaction = "transaction"
)

const (
	ResourceABI = "abi"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
