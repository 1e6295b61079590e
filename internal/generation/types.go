package generation

import "encoding/json"

// endpoints exposed by the generation service
const (
	PathFromGitHub        = "/generate_from_github"
	PathFromDocumentation = "/generate_paper"
)

// name used for every saved artifact, whatever the service sends
const ArtifactFilename = "ieee_paper.docx"

// the two shapes a generation response can take
type Kind string

const (
	KindPaper    Kind = "paper"
	KindArtifact Kind = "artifact"
)

// structured paper sections returned as JSON
type Paper struct {
	Title      string `json:"title,omitempty"`
	Abstract   string `json:"abstract,omitempty"`
	Conclusion string `json:"conclusion,omitempty"`
	References string `json:"references,omitempty"`
}

// opaque document bytes returned by the service
type Artifact struct {
	Data        []byte
	ContentType string
	Filename    string // from Content-Disposition when sent, informational only
}

// a classified generation response. exactly one of Raw or Artifact is set
type Result struct {
	Kind       Kind
	StatusCode int

	// KindPaper: the untouched JSON body, plus its sections when it decodes as an object
	Raw   json.RawMessage
	Paper *Paper

	// KindArtifact
	Artifact *Artifact
}
