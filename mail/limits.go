package mail

import "time"

// Limits enforced by the v3 mail send endpoint.
const (
	// Maximum number of personalizations in one email.
	PersonalizationLimit = 1000
	// Maximum number of to, cc and bcc addresses across all personalizations.
	RecipientLimit = 1000
	// Maximum number of categories on one email.
	CategoryTotalLimit = 10
	// Maximum length of a single category.
	CategoryCharLimit = 255
	// Maximum size of the custom arguments of one personalization, serialized.
	CustomArgsMaxBytes = 10000
	// Maximum number of substitutions in one personalization.
	SubstitutionLimit = 10000
	// How far ahead a send may be scheduled.
	ScheduleWindow = 72 * time.Hour
	// Maximum number of unsubscribe groups shown on the preferences page.
	GroupsToDisplayLimit = 25
	// Bounds of the spam check threshold.
	SpamThresholdMin = 1
	SpamThresholdMax = 10
)

// Length of the serialized custom arguments kept in a TooManyCustomArguments error.
const previewLength = 100
