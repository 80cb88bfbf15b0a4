package qiita

import "encoding/json"

// Artifact describes the file bundle a job processes. Files maps artifact
// file types to path lists; the keys relevant here are raw_forward_seqs and
// raw_reverse_seqs.
type Artifact struct {
	Files           map[string][]string `json:"files"`
	PrepInformation []json.Number       `json:"prep_information"`
}

// ForwardFiles returns the raw forward read paths.
func (a *Artifact) ForwardFiles() []string {
	return a.Files["raw_forward_seqs"]
}

// ReverseFiles returns the raw reverse read paths, empty for single-end data.
func (a *Artifact) ReverseFiles() []string {
	return a.Files["raw_reverse_seqs"]
}

// PrepID returns the first associated prep-template identifier.
func (a *Artifact) PrepID() string {
	if len(a.PrepInformation) == 0 {
		return ""
	}
	return a.PrepInformation[0].String()
}

// PrepTemplate carries the metadata locations of a preparation.
type PrepTemplate struct {
	QiimeMap string `json:"qiime-map"`
}

type stepPayload struct {
	Step string `json:"step"`
}

type completePayload struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Artifacts []artifactPayload `json:"artifacts,omitempty"`
}

type artifactPayload struct {
	Name         string      `json:"name"`
	ArtifactType string      `json:"artifact_type"`
	Filepaths    [][2]string `json:"filepaths"`
}
