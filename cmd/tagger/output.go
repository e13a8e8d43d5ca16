package main

import (
	"encoding/json"
	"fmt"
	"io"

	"release-tagger/internal/model"
	"release-tagger/internal/runner"
)

// summaryOutput is the JSON form of a run summary.
type summaryOutput struct {
	RunID     string                `json:"run_id"`
	Entries   int                   `json:"entries"`
	Dropped   []string              `json:"dropped,omitempty"`
	Skipped   []runner.SkippedEntry `json:"skipped,omitempty"`
	Actions   []model.Action        `json:"actions,omitempty"`
	Updated   []model.TaskRef       `json:"updated,omitempty"`
	Unchanged []model.TaskRef       `json:"unchanged,omitempty"`
	Failed    []model.TaskRef       `json:"failed,omitempty"`
	Acked     bool                  `json:"acked"`
}

func writeSummary(w io.Writer, format string, s runner.Summary) error {
	out := summaryOutput{
		RunID:     s.RunID,
		Entries:   s.Entries,
		Dropped:   s.Dropped,
		Skipped:   s.Skipped,
		Actions:   s.Actions,
		Unchanged: s.Report.Unchanged,
		Acked:     s.Acked,
	}
	for _, u := range s.Report.Updated {
		out.Updated = append(out.Updated, u.Task)
	}
	for _, f := range s.Report.Failures {
		out.Failed = append(out.Failed, f.Task)
	}

	if format == "json" {
		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "run %s: %d entries, %d actions, %d skipped, %d dropped\n",
		out.RunID, out.Entries, len(out.Actions), len(out.Skipped), len(out.Dropped))
	for _, u := range s.Report.Updated {
		fmt.Fprintf(w, "  tagged %s with %v\n", u.Task, u.Added)
	}
	for _, f := range s.Report.Failures {
		fmt.Fprintf(w, "  failed %s: %v\n", f.Task, f.Err)
	}
	fmt.Fprintf(w, "updated %d, unchanged %d, failed %d, spool acked: %t\n",
		len(out.Updated), len(out.Unchanged), len(out.Failed), out.Acked)
	return nil
}

func writeResult(w io.Writer, format string, res model.Result) error {
	if format == "json" {
		return writeJSON(w, res)
	}
	if res.Skipped() {
		_, err := fmt.Fprintf(w, "skip: %s\n", res.Skip.Reason)
		return err
	}
	a := res.Action
	_, err := fmt.Fprintf(w, "task:   %s\nbranch: %s\nslugs:  %v\nurl:    %s\n", a.Task, a.Branch, a.Slugs, a.URL)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
