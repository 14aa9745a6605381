// Package export turns a rendered artifact bundle into the front and back PNG
// files handed to the operator.
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linesmerrill/dl-generator-api/models"
)

// Side labels used as the file name prefix
const (
	SideFront = "license_front"
	SideBack  = "license_back"
)

// DefaultBackDelay is the pause between writing the front and the back file
const DefaultBackDelay = 800 * time.Millisecond

// Sink stores one exported file and returns where it ended up
type Sink interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// Artifact describes one exported file
type Artifact struct {
	Side     string `json:"side"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Exporter writes the card images of a bundle, front first
type Exporter struct {
	sink      Sink
	backDelay time.Duration
}

// New returns an exporter writing to sink. A negative delay is treated as
// zero.
func New(sink Sink, backDelay time.Duration) *Exporter {
	if backDelay < 0 {
		backDelay = 0
	}
	return &Exporter{sink: sink, backDelay: backDelay}
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Identifier returns the file name identifier for a bundle: the echoed
// license number with anything unsafe for a file name replaced. Bundles
// without a license number get a random identifier.
func Identifier(bundle models.ArtifactBundle) string {
	id := strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(bundle.LicenseData.LicenseNumber), "-"), "-")
	if id == "" {
		return uuid.New().String()
	}
	return id
}

// FileName returns <side>_<identifier>.png
func FileName(side, identifier string) string {
	return fmt.Sprintf("%s_%s.png", side, identifier)
}

// Export decodes both images and saves the front, then after the back delay
// the back. Nothing is saved when either image fails to decode.
func (e *Exporter) Export(ctx context.Context, bundle models.ArtifactBundle) ([]Artifact, error) {
	front, err := decodeImage(bundle.FrontCardImage)
	if err != nil {
		return nil, fmt.Errorf("front image: %w", err)
	}
	back, err := decodeImage(bundle.BackCardImage)
	if err != nil {
		return nil, fmt.Errorf("back image: %w", err)
	}

	id := Identifier(bundle)
	artifacts := make([]Artifact, 0, 2)

	a, err := e.save(ctx, SideFront, id, front)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, a)

	if e.backDelay > 0 {
		timer := time.NewTimer(e.backDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return artifacts, ctx.Err()
		case <-timer.C:
		}
	}

	a, err = e.save(ctx, SideBack, id, back)
	if err != nil {
		return artifacts, err
	}
	return append(artifacts, a), nil
}

func (e *Exporter) save(ctx context.Context, side, id string, data []byte) (Artifact, error) {
	name := FileName(side, id)
	loc, err := e.sink.Save(ctx, name, data)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to save %s: %w", name, err)
	}
	zap.S().Debugw("exported artifact", "name", name, "location", loc)
	return Artifact{Side: side, Name: name, Location: loc}, nil
}

// decodeImage accepts raw base64 or a data URL
func decodeImage(s string) ([]byte, error) {
	if i := strings.Index(s, ";base64,"); strings.HasPrefix(s, "data:") && i >= 0 {
		s = s[i+len(";base64,"):]
	}
	if s == "" {
		return nil, fmt.Errorf("empty image")
	}
	return base64.StdEncoding.DecodeString(s)
}
