package models

// TimeLayout is the timestamp format used throughout the catalog,
// both in the database and in listings.
const TimeLayout = "2006-01-02 15:04:05"

// Attr is a single metadata key/value attached to an entry. Keys
// repeat freely; tags are stored as multiple ("tag", value) pairs.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Entry is one deduplicated piece of content in the store.
type Entry struct {
	ID        int64  `json:"id"` // Database ID
	Timestamp string `json:"timestamp"`
	FileName  string `json:"file_name"` // blob name under orig/
	FileType  string `json:"file_type"` // MIME type, may be empty
	FileSize  int64  `json:"file_size"`
	FileHash  string `json:"file_hash"` // hex SHA-1
}

// Action is one row of the append-only action log.
type Action struct {
	ID        int64  `json:"id"`
	EntryID   int64  `json:"entry_id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
}

// EntryDetail is an entry together with its attributes.
type EntryDetail struct {
	Entry Entry  `json:"entry"`
	Attrs []Attr `json:"attrs"`
}

// Tags returns the values of all "tag" attributes, in insertion order.
func (d *EntryDetail) Tags() []string {
	var tags []string
	for _, a := range d.Attrs {
		if a.Name == "tag" {
			tags = append(tags, a.Value)
		}
	}
	return tags
}

// Attr returns the first value for name, or "" if absent.
func (d *EntryDetail) Attr(name string) string {
	for _, a := range d.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}
