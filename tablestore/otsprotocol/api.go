package otsprotocol

// API names. They double as the request path and as the dispatch key of the
// encoder and decoder maps.
const (
	APICreateTable   = "/CreateTable"
	APIDeleteTable   = "/DeleteTable"
	APIUpdateTable   = "/UpdateTable"
	APIDescribeTable = "/DescribeTable"
	APIListTable     = "/ListTable"

	APIPutRow    = "/PutRow"
	APIGetRow    = "/GetRow"
	APIUpdateRow = "/UpdateRow"
	APIDeleteRow = "/DeleteRow"

	APIBatchWriteRow = "/BatchWriteRow"
	APIBatchGetRow   = "/BatchGetRow"
	APIGetRange      = "/GetRange"
)

const (
	HeaderRequestID    = "x-ots-requestid"
	HeaderInstanceName = "x-ots-instancename"
	HeaderAPIVersion   = "x-ots-apiversion"
	HeaderContentMD5   = "x-ots-contentmd5"
	HeaderDate         = "x-ots-date"

	APIVersion  = "2015-12-31"
	ContentType = "application/x-protobuf"
)

// Error codes returned by the server in Error.Code.
const (
	ErrCodeObjectNotExist     = "OTSObjectNotExist"
	ErrCodeObjectAlreadyExist = "OTSObjectAlreadyExist"
	ErrCodeParameterInvalid   = "OTSParameterInvalid"
	ErrCodeConditionCheckFail = "OTSConditionCheckFail"
	ErrCodeUnsupportOperation = "OTSUnsupportOperation"
	ErrCodeInternalServer     = "OTSInternalServerError"
)
