package model

import (
	"fmt"
	"time"
)

// RootFolderID is the sentinel parent id for top-level items. The root is
// virtual: it is never stored as a row.
const RootFolderID = "root"

// VaultItem is a file or folder in a user's vault. A single table holds both;
// IsFolder discriminates. Folders carry empty FileURL/PublicID and zero size.
type VaultItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	FileURL     string    `json:"file_url,omitempty"`
	PublicID    string    `json:"public_id,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	IsFolder    bool      `json:"is_folder"`
	ParentID    string    `json:"parent_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// SizeMB converts the exact byte count to megabytes for quota math and display.
func (v *VaultItem) SizeMB() float64 {
	return float64(v.SizeBytes) / (1024 * 1024)
}

// FormatSize renders a byte count for display, e.g. "1.23 MB". Sizes are
// persisted as exact integers; formatting happens only at the edge.
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}
