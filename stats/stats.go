/*
Package stats builds requests for the global email statistics endpoint.
*/
package stats

import (
	"github.com/neone/sendgrid-go/encoding"
	"github.com/neone/sendgrid-go/request"
	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/sgtypes"
	"github.com/neone/sendgrid-go/validation"
)

// DateLayout is the day format the stats endpoints read and write.
const DateLayout = "2006-01-02"

// Aggregation groups stats by period.
type Aggregation string

const (
	ByDay   Aggregation = "day"
	ByWeek  Aggregation = "week"
	ByMonth Aggregation = "month"
)

// GlobalStatsParams selects the days to report on.
type GlobalStatsParams struct {
	AggregatedBy Aggregation   `json:"aggregated_by,omitempty" validate:"omitempty,oneof=day week month"`
	EndDate      *sgtypes.Time `json:"end_date,omitempty"`
	Limit        int           `json:"limit,omitempty" validate:"gte=0"`
	Offset       int           `json:"offset,omitempty" validate:"gte=0"`
	StartDate    sgtypes.Time  `json:"start_date" validate:"required"`
}

// Validate requires a start date no later than the end date and a known
// aggregation.
func (params *GlobalStatsParams) Validate() error {
	if err := validation.Struct(params); err != nil {
		return err
	}
	if params.EndDate != nil && params.EndDate.Before(params.StartDate) {
		return sgerrors.InvalidParameter.New("end_date is before start_date", nil, nil)
	}
	return nil
}

// Metrics are the counters reported for one day.
type Metrics struct {
	Blocks           int `json:"blocks"`
	BounceDrops      int `json:"bounce_drops"`
	Bounces          int `json:"bounces"`
	Clicks           int `json:"clicks"`
	Deferred         int `json:"deferred"`
	Delivered        int `json:"delivered"`
	InvalidEmails    int `json:"invalid_emails"`
	Opens            int `json:"opens"`
	Processed        int `json:"processed"`
	Requests         int `json:"requests"`
	SpamReportDrops  int `json:"spam_report_drops"`
	SpamReports      int `json:"spam_reports"`
	UniqueClicks     int `json:"unique_clicks"`
	UniqueOpens      int `json:"unique_opens"`
	UnsubscribeDrops int `json:"unsubscribe_drops"`
	Unsubscribes     int `json:"unsubscribes"`
}

// Stat is one set of metrics within a day.
type Stat struct {
	Metrics Metrics `json:"metrics"`
}

// Day is the stats of a single period.
type Day struct {
	Date  sgtypes.Time `json:"date"`
	Stats []Stat       `json:"stats"`
}

// GlobalStatsRequest reads global stats.
type GlobalStatsRequest = request.Request[[]Day, *GlobalStatsParams]

// NewGlobalStatsRequest returns a request reading global stats. Dates are sent and
// read as days.
func NewGlobalStatsRequest(params *GlobalStatsParams) *GlobalStatsRequest {
	req := request.New[[]Day](request.GET, "/v3/stats", params)
	req.EncodingStrategy = encoding.EncodingStrategy{
		Dates: encoding.DateFormatted, DateLayout: DateLayout,
	}
	req.DecodingStrategy = encoding.DecodingStrategy{
		Dates: encoding.DateFormatted, DateLayout: DateLayout,
	}
	return req
}
