package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/chayuto/ai-truffle-hog/internal/entropy"
	"github.com/chayuto/ai-truffle-hog/internal/model"
)

// SARIF 2.1.0's schema is large; this is the minimal subset spec.md §6
// requires: one run, one tool driver with a rule per (provider, pattern)
// combination observed, and one result per Candidate carrying its file
// path and line/column range.
//
// No library in the retrieved pack emits SARIF, so this struct tree is
// hand-built against the schema rather than grounded on an example.

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool      `json:"tool"`
	Results []sarifResult  `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name            string      `json:"name"`
	InformationURI  string      `json:"informationUri,omitempty"`
	Version         string      `json:"version,omitempty"`
	Rules           []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string             `json:"ruleId"`
	Level     string             `json:"level"`
	Message   sarifMessage       `json:"message"`
	Locations []sarifLocation    `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndColumn   int `json:"endColumn"`
}

// ToolName and ToolInformationURI identify this scanner in SARIF output.
const (
	ToolName           = "ai-truffle-hog"
	ToolInformationURI = ""
)

// WriteSARIF renders session as a SARIF 2.1.0 log. Rule IDs follow
// "{provider}/{pattern}"; each result's location carries the Candidate's
// file path and line/column region, and its message carries the
// redacted secret, never the raw value.
func WriteSARIF(w io.Writer, session model.ScanSession) error {
	rules := map[string]sarifRule{}
	var results []sarifResult

	for _, r := range session.Results {
		for _, c := range r.Candidates {
			id := ruleID(c)
			if _, ok := rules[id]; !ok {
				rules[id] = sarifRule{ID: id, Name: id}
			}

			results = append(results, sarifResult{
				RuleID: id,
				Level:  sarifLevel(c.Validation.Classification),
				Message: sarifMessage{
					Text: "potential " + c.Provider + " credential: " + entropy.Redact(c.SecretValue, entropy.DefaultRedactOptions()),
				},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: c.FilePath},
						Region: sarifRegion{
							StartLine:   c.Line,
							StartColumn: c.ColumnStart,
							EndColumn:   c.ColumnEnd,
						},
					},
				}},
			})
		}
	}

	ruleList := make([]sarifRule, 0, len(rules))
	for _, rule := range rules {
		ruleList = append(ruleList, rule)
	}
	sort.Slice(ruleList, func(i, j int) bool { return ruleList[i].ID < ruleList[j].ID })

	out := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           ToolName,
				InformationURI: ToolInformationURI,
				Rules:          ruleList,
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
