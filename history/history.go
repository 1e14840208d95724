// Package history records finished image operations.
//
// An Entry is an opaque record of one tool run: the tool name, a small
// preview of the result, when it happened and the parameters used. The
// image engine never touches this package; front ends decide what to keep.
package history

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/jpeg"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/nfnt/resize"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNotFound is returned when no entry has the requested ID.
var ErrNotFound = errors.New("history entry not found")

// ThumbnailSize bounds the preview stored in Entry.Result.
const ThumbnailSize = 160

// Entry is one history record.
type Entry struct {
	ID         string         `json:"id"`
	Tool       string         `json:"tool"`
	Result     string         `json:"result"`
	Timestamp  time.Time      `json:"timestamp"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// NewEntry creates an entry for tool with a thumbnail of img as its result.
func NewEntry(tool string, img image.Image, params map[string]any) (*Entry, error) {
	result, err := Thumbnail(img)
	if err != nil {
		return nil, err
	}
	return &Entry{
		ID:         uuid.NewString(),
		Tool:       tool,
		Result:     result,
		Timestamp:  time.Now(),
		Parameters: params,
	}, nil
}

// Thumbnail returns img shrunk to fit ThumbnailSize as a JPEG data URL.
func Thumbnail(img image.Image) (string, error) {
	thumb := resize.Thumbnail(ThumbnailSize, ThumbnailSize, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 70}); err != nil {
		return "", err
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Store persists entries, newest first.
type Store interface {
	Add(*Entry) error
	List() ([]Entry, error)
	Get(id string) (*Entry, error)
	Delete(id string) error
	Clear() error
}

// Options configures a store.
type Options struct {
	// Limit caps the number of entries kept. Older entries are dropped.
	Limit int `default:"20"`
}

type entries []Entry

func (es entries) add(e Entry, limit int) entries {
	es = append(entries{e}, es...)
	if limit > 0 && len(es) > limit {
		es = es[:limit]
	}
	return es
}

func (es entries) index(id string) int {
	for i, e := range es {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (es entries) clone() []Entry {
	return append([]Entry(nil), es...)
}

func checkEntry(e *Entry) error {
	if e == nil {
		return errors.New("nil history entry")
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return nil
}
