package fetch

import (
	"net/url"
	"strings"
)

// Platform is a known job board.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"ashbyhq.com", PlatformAshby},
	{"linkedin.com", PlatformLinkedIn},
}

// DetectPlatform identifies the job board from the URL's host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

var contentSelectors = map[Platform][]string{
	PlatformGreenhouse: {
		".job__description.body",
		".job-description__content",
		"#content",
		".job-post-container",
	},
	PlatformLever: {
		".posting-page",
		".section-wrapper.page-full-width",
		".posting-description",
		".content",
	},
	PlatformWorkday: {
		"[data-automation-id='jobPostingDescription']",
		"[data-automation-id='jobDescription']",
		".job-description",
	},
	PlatformAshby: {
		".ashby-job-posting-right-pane",
		"[class*='_descriptionText']",
		"main",
	},
	PlatformLinkedIn: {
		".show-more-less-html__markup",
		".description__text",
		".jobs-description",
	},
}

// PlatformContentSelectors returns the description selectors for a board,
// or the generic job-page selectors for unknown boards.
func PlatformContentSelectors(platform Platform) []string {
	if sel, ok := contentSelectors[platform]; ok {
		return append([]string(nil), sel...)
	}
	return JobPostingSelectors()
}

var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".voluntary-disclosure",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

var platformNoise = map[Platform][]string{
	PlatformGreenhouse: {".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	PlatformLever:      {".apply-section", ".lever-application-form", ".posting-apply"},
	PlatformWorkday:    {"[data-automation-id='applyButton']", ".application-section"},
	PlatformAshby:      {".ashby-application-form-container"},
	PlatformLinkedIn:   {".top-card-layout__cta-container", ".similar-jobs"},
}

// PlatformNoiseSelectors returns selectors removed before extraction:
// application forms, EEO boilerplate and share widgets.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string(nil), commonNoise...)
	return append(out, platformNoise[platform]...)
}
