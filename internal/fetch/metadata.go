package fetch

import (
	"encoding/json"
	"fmt"
	"os"
)

// DatasetInfo is one catalog entry. Fields keeps every key as it appeared
// in the file, including download_url.
type DatasetInfo struct {
	DownloadURL string
	Fields      map[string]json.RawMessage
}

func (d *DatasetInfo) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	d.Fields = fields
	d.DownloadURL = ""
	if raw, ok := fields["download_url"]; ok {
		if err := json.Unmarshal(raw, &d.DownloadURL); err != nil {
			return fmt.Errorf("download_url: %w", err)
		}
	}
	return nil
}

func (d DatasetInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Fields)
}

type Catalog map[string]DatasetInfo

func ReadJSONMetadata(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cat, nil
}

func DatasetMetadata(path, name string) (DatasetInfo, error) {
	cat, err := ReadJSONMetadata(path)
	if err != nil {
		return DatasetInfo{}, err
	}
	info, ok := cat[name]
	if !ok {
		return DatasetInfo{}, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
	}
	return info, nil
}
