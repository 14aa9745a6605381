package form

import "strings"

// MaxPhotoBytes is the largest photo a request accepts
const MaxPhotoBytes = 5 * 1024 * 1024

// Photo is an attached portrait
type Photo struct {
	Data     []byte
	MIMEType string
}

// AttachPhoto validates and stores a photo, replacing any previous one. On
// failure the previous photo is kept.
func (m *Model) AttachPhoto(data []byte, mimeType string, size int64) error {
	if size > MaxPhotoBytes || int64(len(data)) > MaxPhotoBytes {
		return ErrPhotoTooLarge
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/") {
		return ErrPhotoWrongType
	}
	m.photo = &Photo{Data: append([]byte(nil), data...), MIMEType: mimeType}
	return nil
}

// ClearPhoto removes the attached photo
func (m *Model) ClearPhoto() {
	m.photo = nil
}

// Photo returns a copy of the attached photo, if any
func (m *Model) Photo() (Photo, bool) {
	if m.photo == nil {
		return Photo{}, false
	}
	return Photo{Data: append([]byte(nil), m.photo.Data...), MIMEType: m.photo.MIMEType}, true
}
