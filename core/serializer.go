package core

import (
	"encoding/json"
)

// FormSerializer turns a permission table into the JSON array which is posted in the hidden form field.
type FormSerializer struct {
	FolderID string // same for every record
}

// Records returns one permission record per row, in row order.
func (s FormSerializer) Records(t *PermissionTable) []Permission {
	var records = make([]Permission, 0, t.Len())
	for _, row := range t.rows {
		var p = row.Permission
		p.FolderID = s.FolderID
		records = append(records, p)
	}
	return records
}

// Serialize returns the JSON array of Records. An empty table yields "[]".
func (s FormSerializer) Serialize(t *PermissionTable) (string, error) {
	data, err := json.Marshal(s.Records(t))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParsePermissions parses the content of the hidden form field.
func ParsePermissions(field string) ([]Permission, error) {
	var perms = []Permission{}
	if err := json.Unmarshal([]byte(field), &perms); err != nil {
		return nil, err
	}
	return perms, nil
}
