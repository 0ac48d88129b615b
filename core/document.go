package core

import (
	"errors"
	"fmt"
	"strings"
)

type Document struct {
	ID       string
	Title    string
	Body     string // markdown
	URL      string
	Level    int
	FolderID string // empty if the document is not in a folder
	Created  int64
	Edited   int64
}

type DocumentDB interface {
	GetAllDocuments(limit, offset int) ([]Document, error)
	GetDocument(id string) (Document, error)
	InsertDocument(d Document) (Document, error)
	// UpdateDocument stores title, body, url, level and folder id, and sets the edit time.
	UpdateDocument(d Document) (Document, error)
}

var ErrEmptyTitle = errors.New("document title can't be empty")

// UpdateDocument shadows DocumentDB.UpdateDocument. A non-empty folder id must belong to an existing folder.
func (c *CoreDB) UpdateDocument(d Document) (Document, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return Document{}, ErrEmptyTitle
	}
	if d.FolderID != "" {
		if _, err := c.GetFolder(d.FolderID); err != nil {
			return Document{}, fmt.Errorf("folder %s: %w", d.FolderID, err)
		}
	}
	return c.DocumentDB.UpdateDocument(d)
}

// FolderDocuments is a folder with the documents in it.
type FolderDocuments struct {
	Folder
	Documents []Document
}

// GroupByFolder sorts documents into their folders, keeping the order of both slices.
// Documents without folder, or whose folder is not given, are returned as loose.
func GroupByFolder(folders []Folder, docs []Document) (grouped []FolderDocuments, loose []Document) {

	grouped = make([]FolderDocuments, len(folders))
	var byID = make(map[string]int, len(folders))
	for i, f := range folders {
		grouped[i].Folder = f
		byID[f.ID] = i
	}

	for _, d := range docs {
		if i, ok := byID[d.FolderID]; ok && d.FolderID != "" {
			grouped[i].Documents = append(grouped[i].Documents, d)
		} else {
			loose = append(loose, d)
		}
	}
	return grouped, loose
}
