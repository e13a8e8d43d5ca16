package webhook

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Shared secret: token header or HMAC key
	AllowedIPs      []string // IP whitelist (optional)
	RateLimitPerMin int      // Max requests per minute per source IP
}

const (
	// EventChangeMerged is the only Gerrit event that is spooled.
	EventChangeMerged = "change-merged"

	HeaderToken     = "X-Gerrit-Token"
	HeaderSignature = "X-Gerrit-Signature"

	maxBodyBytes = 1 << 20
)

// GerritEvent is the subset of a Gerrit stream/webhook event the tagger reads.
type GerritEvent struct {
	Type   string `json:"type"`
	Change struct {
		Project       string `json:"project"`
		Branch        string `json:"branch"`
		ID            string `json:"id"`
		Number        int    `json:"number"`
		URL           string `json:"url"`
		CommitMessage string `json:"commitMessage"`
	} `json:"change"`
	PatchSet struct {
		Number   int    `json:"number"`
		Revision string `json:"revision"`
	} `json:"patchSet"`
	NewRev string `json:"newRev"`
}

// acceptedResponse is returned for spooled events.
type acceptedResponse struct {
	Status string `json:"status"`
	Entry  string `json:"entry,omitempty"`
}
