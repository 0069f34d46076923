package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/umputun/iqcmaker/app/enums"
)

// Record is a single generation request and its lifecycle state
type Record struct {
	ID        string          `json:"id" yaml:"id" jsonschema:"description=unique job id"`
	Timestamp string          `json:"timestamp" yaml:"timestamp" jsonschema:"description=local submission time"`
	Text      string          `json:"text" yaml:"text" jsonschema:"description=trimmed user text"`
	Status    enums.JobStatus `json:"status" yaml:"status" jsonschema:"description=job lifecycle state"`
	Result    string          `json:"result,omitempty" yaml:"result,omitempty" jsonschema:"description=generated artifact address of succeeded job"`
}

// Terminal returns true for succeeded and failed records
func (r Record) Terminal() bool {
	return r.Status == enums.JobStatusSucceeded || r.Status == enums.JobStatusFailed
}

// legacyStatus maps status names written by the nexa web front end
var legacyStatus = map[string]enums.JobStatus{
	"PROSES":   enums.JobStatusPending,
	"BERHASIL": enums.JobStatusSucceeded,
	"GAGAL":    enums.JobStatusFailed,
}

// UnmarshalJSON decodes record accepting both current and legacy status names
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var raw struct {
		plain
		Status string `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Record(raw.plain)

	if st, ok := legacyStatus[strings.ToUpper(raw.Status)]; ok {
		r.Status = st
		return nil
	}
	st, err := enums.ParseJobStatus(raw.Status)
	if err != nil {
		return fmt.Errorf("record %s: %w", r.ID, err)
	}
	r.Status = st
	return nil
}

// validate checks record invariants which must hold for any stored record
func (r Record) validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("record without id")
	}
	switch r.Status {
	case enums.JobStatusSucceeded:
		if r.Result == "" {
			return fmt.Errorf("record %s: succeeded without result", r.ID)
		}
	case enums.JobStatusPending, enums.JobStatusFailed:
		if r.Result != "" {
			return fmt.Errorf("record %s: result set for %s record", r.ID, r.Status)
		}
	default:
		return fmt.Errorf("record %s: unknown status %q", r.ID, r.Status)
	}
	return nil
}
