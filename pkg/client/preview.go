package client

// Media types sent in the Accept header.
const (
	// MediaTypeV3 is the default versioned media type for every request.
	MediaTypeV3 = "application/vnd.github.v3+json"

	PreviewBaptiste = "application/vnd.github.baptiste-preview+json"
	PreviewDorian   = "application/vnd.github.dorian-preview+json"
	PreviewGroot    = "application/vnd.github.groot-preview+json"
	PreviewLondon   = "application/vnd.github.london-preview+json"
	PreviewMercy    = "application/vnd.github.mercy-preview+json"
	PreviewZzzax    = "application/vnd.github.zzzax-preview+json"
)
