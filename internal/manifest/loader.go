package manifest

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Job is one audio reference to push through the pipeline.
type Job struct {
	Label    string
	AudioRef string
}

// Load reads audio jobs from the first sheet of an xlsx manifest,
// auto-detecting the audio column by header heuristics.
func Load(path string) ([]Job, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	audioIdx := -1
	labelIdx := -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "audio") || strings.Contains(l, "record") ||
			strings.Contains(l, "url") || strings.Contains(l, "link"):
			if audioIdx == -1 {
				audioIdx = i
			}
		case strings.Contains(l, "label") || strings.Contains(l, "name") || strings.Contains(l, "id"):
			if labelIdx == -1 {
				labelIdx = i
			}
		}
	}
	if audioIdx == -1 {
		audioIdx = 0
	}

	var out []Job
	for i, r := range rows {
		if i == 0 {
			continue
		}
		job := Job{}
		if audioIdx < len(r) {
			job.AudioRef = strings.TrimSpace(r[audioIdx])
		}
		if labelIdx >= 0 && labelIdx < len(r) {
			job.Label = strings.TrimSpace(r[labelIdx])
		}
		if job.AudioRef == "" {
			continue
		}
		if job.Label == "" {
			job.Label = job.AudioRef
		}
		out = append(out, job)
	}
	return out, nil
}
