package extract

import (
	"regexp"
	"strings"

	"github.com/faros-ai/synclog/internal/model"
)

var (
	sourceVersionRe = regexp.MustCompile(`Source version:\s*(.+)`)
	destVersionRe   = regexp.MustCompile(`Destination version:\s*(.+)`)
	sourceImageRe   = regexp.MustCompile(`\[source\]\s+image:\s*(\S+)`)
	destImageRe     = regexp.MustCompile(`\[destination\]\s+image:\s*(\S+)`)
)

// Versions extracts connector image and version identifiers for each side.
// The platform logs these once at startup; first occurrence wins per field
// so a retry's re-announcement never rewrites history.
type Versions struct{}

func (Versions) Name() string { return "versions" }

func (Versions) Extract(lines []model.ClassifiedLine) Fragment {
	frag := &versionsFragment{}
	for _, cl := range lines {
		if cl.Kind == model.Malformed {
			continue
		}
		frag.scan(cl)
	}
	return frag
}

type versionsFragment struct {
	source      model.ConnectorInfo
	destination model.ConnectorInfo
}

func (f *versionsFragment) scan(cl model.ClassifiedLine) {
	if m := sourceVersionRe.FindStringSubmatch(cl.Message); m != nil {
		setFirst(&f.source.Version, strings.TrimSpace(m[1]))
		return
	}
	if m := destVersionRe.FindStringSubmatch(cl.Message); m != nil {
		setFirst(&f.destination.Version, strings.TrimSpace(m[1]))
		return
	}
	if m := sourceImageRe.FindStringSubmatch(cl.Message); m != nil {
		setFirst(&f.source.Image, m[1])
		return
	}
	if m := destImageRe.FindStringSubmatch(cl.Message); m != nil {
		setFirst(&f.destination.Image, m[1])
		return
	}
	if cl.Kind == model.Structured {
		f.scanPayload(cl.Payload)
	}
}

// scanPayload handles connectors that announce themselves as structured
// metadata ({"connector": "source", "image": ..., "version": ...}).
func (f *versionsFragment) scanPayload(payload map[string]any) {
	side, ok := payloadString(payload, "connector", "side")
	if !ok {
		return
	}
	info := &f.source
	switch side {
	case "source":
	case "destination":
		info = &f.destination
	default:
		return
	}
	if image, ok := payloadString(payload, "image", "dockerImage"); ok {
		setFirst(&info.Image, image)
	}
	if version, ok := payloadString(payload, "version", "dockerImageTag"); ok {
		setFirst(&info.Version, version)
	}
}

func (f *versionsFragment) Apply(res *model.SyncResult) {
	applyConnector(&res.Source, f.source)
	applyConnector(&res.Destination, f.destination)
}

func applyConnector(dst *model.ConnectorInfo, found model.ConnectorInfo) {
	if found.Image != "" {
		dst.Image = found.Image
	}
	if found.Version != "" {
		dst.Version = found.Version
	}
}

func setFirst(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}
