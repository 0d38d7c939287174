// Package media normalizes references to journal attachments and classifies
// them by kind.
package media

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// Kind identifies the type of an attachment. The zero value is not a valid
// kind; use one of the declared constants.
type Kind uint8

const (
	kindUnknown Kind = iota
	// KindImage is a still picture.
	KindImage
	// KindVideo is a moving picture.
	KindVideo
	// KindAudio is a sound recording.
	KindAudio
)

// ErrUnknownKind is returned when a kind string is not one of image, video or
// audio.
var ErrUnknownKind = errors.New("media: unknown kind")

// AllKinds returns the list of supported kinds.
func AllKinds() []Kind {
	return []Kind{KindImage, KindVideo, KindAudio}
}

// ParseKind converts the wire name of a kind into a Kind.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "image":
		return KindImage, nil
	case "video":
		return KindVideo, nil
	case "audio":
		return KindAudio, nil
	}
	return kindUnknown, fmt.Errorf("%w %q", ErrUnknownKind, raw)
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k >= KindImage && k <= KindAudio
}

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// KindForMIME maps a MIME type such as "image/png" to a Kind.
func KindForMIME(contentType string) (Kind, error) {
	base, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		base = contentType
	}
	major, _, _ := strings.Cut(strings.ToLower(base), "/")
	return ParseKind(major)
}

// KindForName infers the kind from a file extension.
func KindForName(name string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return kindUnknown, fmt.Errorf("%w: %q has no extension", ErrUnknownKind, name)
	}
	// mime tables differ between platforms; the usual phone formats are fixed.
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic", ".heif", ".bmp":
		return KindImage, nil
	case ".mp4", ".mov", ".m4v", ".mkv", ".webm", ".avi":
		return KindVideo, nil
	case ".mp3", ".m4a", ".aac", ".opus", ".flac", ".wav", ".ogg":
		return KindAudio, nil
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		if k, err := KindForMIME(ct); err == nil {
			return k, nil
		}
	}
	return kindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}
