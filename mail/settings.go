package mail

import (
	"strconv"
	"strings"

	"github.com/neone/sendgrid-go/sgerrors"
	"github.com/neone/sendgrid-go/validation"
)

// Setting is a toggle with no further options.
type Setting struct {
	Enable bool `json:"enable"`
}

// BCCSetting blind copies every email to Email.
type BCCSetting struct {
	Email  string `json:"email,omitempty"`
	Enable bool   `json:"enable"`
}

func (setting *BCCSetting) Validate() error {
	if !setting.Enable {
		return nil
	}
	return validation.Var(setting.Email, "required,email", sgerrors.InvalidSetting)
}

// FooterSetting appends a footer to every email.
type FooterSetting struct {
	Enable bool   `json:"enable"`
	HTML   string `json:"html,omitempty"`
	Text   string `json:"text,omitempty"`
}

func (setting *FooterSetting) Validate() error {
	if setting.Enable && setting.Text == "" && setting.HTML == "" {
		return sgerrors.InvalidSetting.New("enabled footer has no text or html", nil, nil)
	}
	return nil
}

// SpamCheckSetting scores emails and optionally posts the result to a URL.
type SpamCheckSetting struct {
	Enable    bool   `json:"enable"`
	PostToURL string `json:"post_to_url,omitempty"`
	Threshold int    `json:"threshold,omitempty"`
}

func (setting *SpamCheckSetting) Validate() error {
	if !setting.Enable {
		return nil
	}
	if setting.Threshold < SpamThresholdMin || setting.Threshold > SpamThresholdMax {
		return sgerrors.InvalidSetting.New(
			"spam check threshold must be between "+strconv.Itoa(SpamThresholdMin)+
				" and "+strconv.Itoa(SpamThresholdMax),
			map[string]interface{}{"threshold": setting.Threshold},
			nil,
		)
	}
	if setting.PostToURL == "" {
		return nil
	}
	return validation.Var(setting.PostToURL, "url", sgerrors.InvalidSetting)
}

// MailSettings are the delivery options of an email.
type MailSettings struct {
	BCC                  *BCCSetting       `json:"bcc,omitempty"`
	BypassListManagement *Setting          `json:"bypass_list_management,omitempty"`
	Footer               *FooterSetting    `json:"footer,omitempty"`
	SandboxMode          *Setting          `json:"sandbox_mode,omitempty"`
	SpamCheck            *SpamCheckSetting `json:"spam_check,omitempty"`
}

// Validate checks each setting in declaration order.
func (settings *MailSettings) Validate() error {
	return validation.All(settings.BCC, settings.Footer, settings.SpamCheck)
}

// ClickTracking rewrites links to track clicks.
type ClickTracking struct {
	Enable     bool `json:"enable"`
	EnableText bool `json:"enable_text"`
}

// OpenTracking inserts a tracking pixel.
type OpenTracking struct {
	Enable          bool   `json:"enable"`
	SubstitutionTag string `json:"substitution_tag,omitempty"`
}

// Placeholder subscription text must contain, replaced by the unsubscribe link.
const subscriptionPlaceholder = "<% %>"

// SubscriptionTracking appends an unsubscribe link.
type SubscriptionTracking struct {
	Enable          bool   `json:"enable"`
	HTML            string `json:"html,omitempty"`
	SubstitutionTag string `json:"substitution_tag,omitempty"`
	Text            string `json:"text,omitempty"`
}

func (tracking *SubscriptionTracking) Validate() error {
	if !tracking.Enable {
		return nil
	}
	for _, body := range []string{tracking.Text, tracking.HTML} {
		if body != "" && !strings.Contains(body, subscriptionPlaceholder) {
			return sgerrors.InvalidSetting.New(
				"subscription tracking text must contain '"+subscriptionPlaceholder+"'",
				nil,
				nil,
			)
		}
	}
	return nil
}

// GoogleAnalytics adds utm parameters to links.
type GoogleAnalytics struct {
	Enable   bool   `json:"enable"`
	Campaign string `json:"utm_campaign,omitempty" validate:"required_if=Enable true"`
	Content  string `json:"utm_content,omitempty"`
	Medium   string `json:"utm_medium,omitempty"`
	Source   string `json:"utm_source,omitempty" validate:"required_if=Enable true"`
	Term     string `json:"utm_term,omitempty"`
}

// Validate requires a source and a campaign when enabled.
func (analytics *GoogleAnalytics) Validate() error {
	return validation.StructAs(analytics, sgerrors.InvalidSetting)
}

// TrackingSettings are the tracking options of an email.
type TrackingSettings struct {
	ClickTracking        *ClickTracking        `json:"click_tracking,omitempty"`
	GoogleAnalytics      *GoogleAnalytics      `json:"ganalytics,omitempty"`
	OpenTracking         *OpenTracking         `json:"open_tracking,omitempty"`
	SubscriptionTracking *SubscriptionTracking `json:"subscription_tracking,omitempty"`
}

// Validate checks each setting in declaration order.
func (settings *TrackingSettings) Validate() error {
	return validation.All(settings.GoogleAnalytics, settings.SubscriptionTracking)
}
