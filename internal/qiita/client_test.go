package qiita_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"seqflow/internal/artifacts"
	"seqflow/internal/config"
	"seqflow/internal/qiita"
	"seqflow/internal/services"
)

type fakeDoer struct {
	requests []*http.Request
	bodies   []string
	status   int
	payload  string
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	body := ""
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		body = string(data)
	}
	f.bodies = append(f.bodies, body)

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	payload := f.payload
	if payload == "" {
		payload = "{}"
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(payload))),
	}, nil
}

func newClient(doer *fakeDoer) *qiita.Client {
	cfg := config.Qiita{BaseURL: "https://qiita.example/", ClientID: "client", ClientSecret: "secret", RequestTimeout: 5}
	return qiita.New(cfg, qiita.WithHTTPDoer(doer))
}

func TestGetArtifactParsesFilesAndPrep(t *testing.T) {
	doer := &fakeDoer{payload: `{
		"files": {
			"raw_forward_seqs": ["/data/s1_R1.fastq.gz"],
			"raw_reverse_seqs": ["/data/s1_R2.fastq.gz"]
		},
		"prep_information": [376]
	}`}
	client := newClient(doer)

	artifact, err := client.GetArtifact(context.Background(), "5")
	if err != nil {
		t.Fatalf("GetArtifact returned error: %v", err)
	}
	if got := artifact.ForwardFiles(); len(got) != 1 || got[0] != "/data/s1_R1.fastq.gz" {
		t.Fatalf("unexpected forward files: %v", got)
	}
	if got := artifact.ReverseFiles(); len(got) != 1 {
		t.Fatalf("unexpected reverse files: %v", got)
	}
	if artifact.PrepID() != "376" {
		t.Fatalf("unexpected prep id: %q", artifact.PrepID())
	}

	req := doer.requests[0]
	if req.URL.String() != "https://qiita.example/qiita_db/artifacts/5/" {
		t.Fatalf("unexpected URL: %s", req.URL)
	}
	if user, _, ok := req.BasicAuth(); !ok || user != "client" {
		t.Fatalf("expected basic auth credentials, got %q ok=%v", user, ok)
	}
}

func TestUpdateJobStepPostsMessage(t *testing.T) {
	doer := &fakeDoer{}
	client := newClient(doer)

	if err := client.UpdateJobStep(context.Background(), "job-1", "Step 2 of 4"); err != nil {
		t.Fatalf("UpdateJobStep returned error: %v", err)
	}

	req := doer.requests[0]
	if req.Method != http.MethodPost {
		t.Fatalf("unexpected method: %s", req.Method)
	}
	if req.URL.Path != "/qiita_db/jobs/job-1/step/" {
		t.Fatalf("unexpected path: %s", req.URL.Path)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(doer.bodies[0]), &payload); err != nil {
		t.Fatalf("invalid body %q: %v", doer.bodies[0], err)
	}
	if payload["step"] != "Step 2 of 4" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestCompleteJobSerializesArtifacts(t *testing.T) {
	doer := &fakeDoer{}
	client := newClient(doer)

	descriptors := []artifacts.Descriptor{{
		Label: "Filtered files",
		Kind:  artifacts.KindPerSampleFASTQ,
		Files: []artifacts.File{{Path: "/out/s1.R1.trimmed.filtered.fastq.gz", Type: "raw_forward_seqs"}},
	}}
	if err := client.CompleteJob(context.Background(), "job-1", true, descriptors, ""); err != nil {
		t.Fatalf("CompleteJob returned error: %v", err)
	}

	var payload struct {
		Success   bool `json:"success"`
		Artifacts []struct {
			Name         string      `json:"name"`
			ArtifactType string      `json:"artifact_type"`
			Filepaths    [][2]string `json:"filepaths"`
		} `json:"artifacts"`
	}
	if err := json.Unmarshal([]byte(doer.bodies[0]), &payload); err != nil {
		t.Fatalf("invalid body %q: %v", doer.bodies[0], err)
	}
	if !payload.Success {
		t.Fatal("expected success flag")
	}
	if len(payload.Artifacts) != 1 || payload.Artifacts[0].ArtifactType != "per_sample_FASTQ" {
		t.Fatalf("unexpected artifacts payload: %+v", payload.Artifacts)
	}
	if payload.Artifacts[0].Filepaths[0][0] != "/out/s1.R1.trimmed.filtered.fastq.gz" {
		t.Fatalf("unexpected filepath: %v", payload.Artifacts[0].Filepaths)
	}
}

func TestErrorStatusBecomesExternalToolError(t *testing.T) {
	doer := &fakeDoer{status: http.StatusBadGateway, payload: "upstream down"}
	client := newClient(doer)

	_, err := client.GetArtifact(context.Background(), "5")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}
