package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/relnorm/relnorm/internal/norm"
)

// WriteJSON writes the report as indented JSON to w.
func WriteJSON(w io.Writer, name string, rep *norm.Report) error {
	payload := struct {
		Relation string `json:"relation"`
		*norm.Report
	}{Relation: name, Report: rep}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
