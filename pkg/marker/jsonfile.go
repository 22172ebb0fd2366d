package marker

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/liborw/fiogo/pkg/domain"
)

type markerFile struct {
	LastDownload string `json:"last_download"`
}

// JSONFile persists the marker as a tiny JSON file. A missing file
// means no marker has been set yet, which is not an error.
type JSONFile struct {
	filename string
}

func NewJSONFile(filename string) *JSONFile {
	return &JSONFile{filename: filename}
}

func (f *JSONFile) LastMarker() (time.Time, bool, error) {
	data, err := os.ReadFile(f.filename)
	if os.IsNotExist(err) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	var mf markerFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return time.Time{}, false, fmt.Errorf("marker file %s: %w", f.filename, err)
	}
	if mf.LastDownload == "" {
		return time.Time{}, false, nil
	}
	date, err := domain.ParseDate(mf.LastDownload)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("marker file %s: %w", f.filename, err)
	}
	return date, true, nil
}

func (f *JSONFile) SetMarker(date time.Time) error {
	data, err := json.Marshal(markerFile{LastDownload: domain.FormatDate(date)})
	if err != nil {
		return err
	}
	return os.WriteFile(f.filename, data, 0644)
}
