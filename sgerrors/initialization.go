package sgerrors

// Validation kinds.

// The content type or accept type of a request is empty or not recognized.
var InvalidContentType = NewErrorType("InvalidContentType", 2000)

// Request path is empty or does not begin with '/'.
var InvalidPath = NewErrorType("InvalidPath", 2001)

// A struct-tag or generic parameter check failed.
var InvalidParameter = NewErrorType("InvalidParameter", 2002)

// Personalization count is outside of [1, PersonalizationLimit].
var InvalidNumberOfPersonalizations = NewErrorType(
	"InvalidNumberOfPersonalizations", 2003,
)

// A message has no content parts, or a content part has an empty value.
var MissingContent = NewErrorType("MissingContent", 2004)

// Content parts are not in non-decreasing ordering index order.
var InvalidContentOrder = NewErrorType("InvalidContentOrder", 2005)

// An address appears more than once across all recipients. ErrorData["address"]
// holds the lower-cased address.
var DuplicateRecipient = NewErrorType("DuplicateRecipient", 2006)

// Total recipients across all personalizations exceed RecipientLimit.
var TooManyRecipients = NewErrorType("TooManyRecipients", 2007)

// No subject, template, or per-personalization subject was supplied.
var MissingSubject = NewErrorType("MissingSubject", 2008)

// More categories than CategoryTotalLimit.
var TooManyCategories = NewErrorType("TooManyCategories", 2009)

// A category is longer than CategoryCharLimit. ErrorData["category"] holds it.
var CategoryTooLong = NewErrorType("CategoryTooLong", 2010)

// Merged custom arguments of a personalization serialize to more than
// CustomArgsMaxBytes. ErrorData holds "bytes" and "preview".
var TooManyCustomArguments = NewErrorType("TooManyCustomArguments", 2011)

// An address is missing or malformed.
var InvalidEmail = NewErrorType("InvalidEmail", 2012)

// A personalization has no "to" recipients.
var MissingRecipients = NewErrorType("MissingRecipients", 2013)

// A personalization has more substitutions than SubstitutionLimit.
var TooManySubstitutions = NewErrorType("TooManySubstitutions", 2014)

// A header name is reserved or malformed.
var InvalidHeader = NewErrorType("InvalidHeader", 2015)

// An attachment is missing content, a filename, or an inline content id.
var InvalidAttachment = NewErrorType("InvalidAttachment", 2016)

// Unsubscribe group settings are invalid.
var InvalidASM = NewErrorType("InvalidASM", 2017)

// A scheduled send time is in the past or beyond the scheduling window.
var InvalidSendAt = NewErrorType("InvalidSendAt", 2018)

// A mail or tracking setting is invalid.
var InvalidSetting = NewErrorType("InvalidSetting", 2019)

// Encoding kinds.

// Parameters could not be serialized for transmission.
var EncodingFailed = NewErrorType("EncodingFailed", 3000)

// A response body could not be decoded into the result model.
var DecodingFailed = NewErrorType("DecodingFailed", 3001)

// An encoding or decoding strategy is misconfigured.
var InvalidStrategy = NewErrorType("InvalidStrategy", 3002)

// Dispatch kinds.

// The session has no authentication configured.
var AuthenticationMissing = NewErrorType("AuthenticationMissing", 4000)

// The request does not accept the session's authentication mechanism.
var AuthenticationNotSupported = NewErrorType("AuthenticationNotSupported", 4001)

// The session acts on behalf of a subuser but the request does not allow it.
var ImpersonationNotSupported = NewErrorType("ImpersonationNotSupported", 4002)

// The API answered with an error status. ErrorData holds "status" and "errors".
var APIResponse = NewErrorType("APIResponse", 4003)

// ErrorList holds every default kind.
var ErrorList = []*ErrorType{
	InvalidContentType,
	InvalidPath,
	InvalidParameter,
	InvalidNumberOfPersonalizations,
	MissingContent,
	InvalidContentOrder,
	DuplicateRecipient,
	TooManyRecipients,
	MissingSubject,
	TooManyCategories,
	CategoryTooLong,
	TooManyCustomArguments,
	InvalidEmail,
	MissingRecipients,
	TooManySubstitutions,
	InvalidHeader,
	InvalidAttachment,
	InvalidASM,
	InvalidSendAt,
	InvalidSetting,
	EncodingFailed,
	DecodingFailed,
	InvalidStrategy,
	AuthenticationMissing,
	AuthenticationNotSupported,
	ImpersonationNotSupported,
	APIResponse,
}

// Used to make ErrorTypeCodeIndex.
func makeDefaultErrorCodeIndex() map[int]*ErrorType {
	index := make(map[int]*ErrorType)
	for _, errorType := range ErrorList {
		index[errorType.code] = errorType
	}
	return index
}

// ErrorTypeCodeIndex indexes the default kinds by code.
var ErrorTypeCodeIndex = makeDefaultErrorCodeIndex()
