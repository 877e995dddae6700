/*
Package paging holds the offset / limit paging used by list endpoints, and reads the
page links the API returns in its Link header.
*/
package paging

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/neone/sendgrid-go/sgerrors"
	"golang.org/x/xerrors"
)

// MaxLimit is the largest page list endpoints return.
const MaxLimit = 500

// Paging parameters for a list request. Zero values are left out of the query.
type Paging struct {
	// Maximum item count to return.
	Limit int `json:"limit,omitempty"`
	// How far to offset the page.
	Offset int `json:"offset,omitempty"`
}

// Validate fails with sgerrors.InvalidParameter on a negative offset or a limit
// outside [0, MaxLimit].
func (paging Paging) Validate() error {
	if paging.Offset < 0 {
		return sgerrors.InvalidParameter.New(
			"paging offset must not be negative",
			map[string]interface{}{"offset": paging.Offset},
			nil,
		)
	}
	if paging.Limit < 0 || paging.Limit > MaxLimit {
		return sgerrors.InvalidParameter.New(
			"paging limit must be between 0 and "+strconv.Itoa(MaxLimit),
			map[string]interface{}{"limit": paging.Limit},
			nil,
		)
	}
	return nil
}

// Next returns the page after this one.
func (paging Paging) Next() Paging {
	return Paging{Offset: paging.Offset + paging.Limit, Limit: paging.Limit}
}

type valueFetcher interface {
	Get(key string) string
}

func getInt(values valueFetcher, fieldName string, defaultValue int) (int, error) {
	value := values.Get(fieldName)
	if value == "" {
		return defaultValue, nil
	}

	valueInt, err := strconv.Atoi(value)
	if err != nil {
		return 0, xerrors.New(fieldName + " is not int")
	}
	return valueInt, nil
}

// FromParams reads paging from url parameters.
func FromParams(values valueFetcher, defaultLimit int) (Paging, error) {
	var err error
	paging := Paging{}

	paging.Offset, err = getInt(values, "offset", 0)
	if err != nil {
		return Paging{}, err
	}

	paging.Limit, err = getInt(values, "limit", defaultLimit)
	if err != nil {
		return Paging{}, err
	}

	return paging, nil
}

/*
Links are the pages named in a response's Link header, keyed by rel:

	Link: <https://api.sendgrid.com/v3/suppression/bounces?offset=0&limit=500>; rel="first"; title="1",
	      <https://api.sendgrid.com/v3/suppression/bounces?offset=500&limit=500>; rel="next"; title="2"
*/
type Links map[string]Paging

// Next returns the next page, if the response named one.
func (links Links) Next() (Paging, bool) {
	paging, ok := links["next"]
	return paging, ok
}

// LinksFromHeaders parses the Link header. A missing header gives no links.
// Entries whose url has no paging parameters are skipped.
func LinksFromHeaders(headers valueFetcher) (Links, error) {
	links := make(Links)

	header := headers.Get("Link")
	if header == "" {
		return links, nil
	}

	for _, entry := range strings.Split(header, ",") {
		parts := strings.Split(entry, ";")
		target := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			return nil, xerrors.Errorf("malformed link '%v'", entry)
		}

		parsed, err := url.Parse(target[1 : len(target)-1])
		if err != nil {
			return nil, xerrors.Errorf("malformed link url: %w", err)
		}

		query := parsed.Query()
		if query.Get("offset") == "" && query.Get("limit") == "" {
			continue
		}

		paging, err := FromParams(query, 0)
		if err != nil {
			return nil, err
		}

		for _, attribute := range parts[1:] {
			key, value, found := strings.Cut(strings.TrimSpace(attribute), "=")
			if found && key == "rel" {
				links[strings.Trim(value, `"`)] = paging
			}
		}
	}

	return links, nil
}
