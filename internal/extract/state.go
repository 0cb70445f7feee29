package extract

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"io"
	"regexp"

	"github.com/faros-ai/synclog/internal/model"
)

var (
	initialStateRe = regexp.MustCompile(`Setting initial state of (\S+) stream to `)
	finalStateRe   = regexp.MustCompile(`Last recorded state of (\S+) stream is `)
	globalStateRe  = regexp.MustCompile(`State:\s*\{`)
)

// States captures per-stream checkpoint payloads: the first STATE entry per
// stream is the initial snapshot, the last is the final one, so a stream
// checkpointed once has identical snapshots. Explicit initial/final markers
// logged by the platform override positional capture. Payloads pass through
// verbatim, never interpreted.
type States struct{}

func (States) Name() string { return "states" }

func (States) Extract(lines []model.ClassifiedLine) Fragment {
	frag := &statesFragment{
		firstSeen:     map[string]any{},
		lastSeen:      map[string]any{},
		markedInitial: map[string]any{},
		markedFinal:   map[string]any{},
	}
	for _, cl := range lines {
		if cl.Kind != model.Structured {
			continue
		}
		if m := initialStateRe.FindStringSubmatch(cl.Message); m != nil {
			frag.markedInitial[m[1]] = cl.Payload
			continue
		}
		if m := finalStateRe.FindStringSubmatch(cl.Message); m != nil {
			frag.markedFinal[m[1]] = cl.Payload
			continue
		}
		if recordType, _ := payloadString(cl.Payload, "type"); recordType == "STATE" {
			frag.addProtocolState(cl.Payload)
			continue
		}
		if globalStateRe.MatchString(cl.Message) {
			if data, ok := payloadString(cl.Payload, "data"); ok {
				if decoded := decompressState(data); decoded != nil {
					frag.compressed = decoded
				}
			}
		}
	}
	return frag
}

type statesFragment struct {
	firstSeen     map[string]any // first STATE entry per stream
	lastSeen      map[string]any // last STATE entry per stream
	markedInitial map[string]any // explicit "Setting initial state" markers
	markedFinal   map[string]any // explicit "Last recorded state" markers
	compressed    any
}

// addProtocolState files one STATE protocol entry under its stream name.
func (f *statesFragment) addProtocolState(payload map[string]any) {
	state, ok := payloadMap(payload, "state")
	if !ok {
		return
	}
	stream := protocolStateStream(state)
	if stream == "" {
		return
	}
	if _, seen := f.firstSeen[stream]; !seen {
		f.firstSeen[stream] = state
	}
	f.lastSeen[stream] = state
}

func (f *statesFragment) Apply(res *model.SyncResult) {
	for stream, state := range f.firstSeen {
		res.State.Initial[stream] = state
	}
	for stream, state := range f.lastSeen {
		res.State.Final[stream] = state
	}
	for stream, payload := range f.markedInitial {
		res.State.Initial[stream] = payload
	}
	for stream, payload := range f.markedFinal {
		res.State.Final[stream] = payload
	}
	if f.compressed != nil {
		res.State.Compressed = f.compressed
	}
}

// protocolStateStream resolves the stream a STATE entry checkpoints. Stream
// scoped entries name it in the descriptor; legacy whole-sync entries keyed
// by stream name fall back to their single data key.
func protocolStateStream(state map[string]any) string {
	if stream, ok := payloadMap(state, "stream"); ok {
		if desc, ok := payloadMap(stream, "stream_descriptor"); ok {
			if name, ok := payloadString(desc, "name"); ok {
				return name
			}
		}
	}
	if data, ok := payloadMap(state, "data"); ok && len(data) == 1 {
		for name := range data {
			return name
		}
	}
	return ""
}

// decompressState decodes the platform's base64+gzip global state blob.
// Any failure along the way simply yields nothing; a corrupt blob never
// aborts the run.
func decompressState(data string) any {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil
	}
	defer zr.Close()
	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(plain, &decoded); err != nil {
		return nil
	}
	return decoded
}
