// Package model defines the tag data types shared by the decode, naming and sorting packages.
package model

// TagKey is a tag name as printed by exiftool, e.g. "Date/Time Original".
type TagKey string

// Well-known tags. Every other tag stays an opaque string key.
const (
	KeyFileName           TagKey = "File Name"
	KeyFileNameNew        TagKey = "File Name new"
	KeyDirectory          TagKey = "Directory"
	KeyModifyDate         TagKey = "File Modification Date/Time"
	KeyDateTimeOriginal   TagKey = "Date/Time Original"
	KeySubSecTimeOriginal TagKey = "Sub Sec Time Original"
	KeyCameraModel        TagKey = "Camera Model Name"
	KeySequenceNumber     TagKey = "Sequence Number"
)

// EssentialKeys must be present in the first record of a batch.
var EssentialKeys = []TagKey{KeyFileName, KeyDirectory, KeyModifyDate}

// IsEssential reports whether key is one of EssentialKeys.
func IsEssential(key string) bool {
	for _, k := range EssentialKeys {
		if string(k) == key {
			return true
		}
	}
	return false
}

func (k TagKey) String() string { return string(k) }
