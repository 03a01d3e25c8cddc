// Package probe extracts per-file codec and bitrate facts from mkv
// files by shelling out to the mediainfo binary. Classification and
// ordering never depend on probe results; anything that fails here
// degrades to the "Unknown" report.
package probe

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xlordnoro/postar/internal/logging"
)

// AudioTrack is one audio stream summary.
type AudioTrack struct {
	Lang  string
	Codec string
	Kbps  int // 0 when the bitrate is unknown
}

// Report is the folder-level probe summary consumed by the encoding
// table renderer.
type Report struct {
	Video string
	Audio []AudioTrack
	CRFs  []string
}

// Unknown is the report used when probing is unavailable or fails.
func Unknown() Report {
	return Report{Video: "Unknown"}
}

// Prober wraps the mediainfo CLI.
type Prober struct {
	binary string
	log    *logging.Logger
}

// New returns a Prober using the mediainfo binary on PATH. A nil
// logger discards output.
func New(log *logging.Logger) *Prober {
	if log == nil {
		log = logging.Nop()
	}
	return &Prober{binary: "mediainfo", log: log}
}

type mediainfoOutput struct {
	Media struct {
		Track []struct {
			Type            string `json:"@type"`
			Format          string `json:"Format"`
			BitDepth        string `json:"BitDepth"`
			BitRate         string `json:"BitRate"`
			Language        string `json:"Language"`
			EncodedSettings string `json:"Encoded_Library_Settings"`
		} `json:"track"`
	} `json:"media"`
}

// ProbeFolder inspects the mkv files in a folder: video summary from
// the first file, audio tracks from the first file, CRF values
// collected across all files (distinct, sorted descending).
func (p *Prober) ProbeFolder(folder string) Report {
	if _, err := exec.LookPath(p.binary); err != nil {
		p.log.Debug("probe", "mediainfo not found, skipping probe")
		return Unknown()
	}

	mkvs, err := listMKVs(folder)
	if err != nil || len(mkvs) == 0 {
		return Unknown()
	}

	crfs := map[string]bool{}
	var report Report
	for i, mkv := range mkvs {
		out, err := p.run(mkv)
		if err != nil {
			p.log.Warn("probe", "mediainfo failed", logging.F("file", filepath.Base(mkv)), logging.F("error", err))
			continue
		}
		for _, c := range extractCRFs(out) {
			crfs[c] = true
		}
		if i == 0 {
			report.Video = videoSummary(out)
			report.Audio = audioTracks(out)
		}
	}

	if report.Video == "" {
		report.Video = "Unknown"
	}
	report.CRFs = sortCRFs(crfs)
	return report
}

func (p *Prober) run(path string) (*mediainfoOutput, error) {
	raw, err := exec.Command(p.binary, "--Output=JSON", path).Output()
	if err != nil {
		return nil, err
	}
	var out mediainfoOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse mediainfo output: %w", err)
	}
	return &out, nil
}

func listMKVs(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	var mkvs []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".mkv") {
			continue
		}
		mkvs = append(mkvs, filepath.Join(folder, e.Name()))
	}
	sort.Slice(mkvs, func(i, j int) bool {
		return strings.ToLower(mkvs[i]) < strings.ToLower(mkvs[j])
	})
	return mkvs, nil
}

func videoSummary(out *mediainfoOutput) string {
	for _, t := range out.Media.Track {
		if !strings.EqualFold(t.Type, "Video") {
			continue
		}
		var parts []string
		if t.BitDepth != "" {
			parts = append(parts, t.BitDepth+"-bit")
		}
		if t.Format != "" {
			parts = append(parts, "via "+t.Format)
		}
		if len(parts) == 0 {
			return "Unknown"
		}
		return strings.Join(parts, " ")
	}
	return "Unknown"
}

func audioTracks(out *mediainfoOutput) []AudioTrack {
	var tracks []AudioTrack
	for _, t := range out.Media.Track {
		if !strings.EqualFold(t.Type, "Audio") {
			continue
		}
		codec := t.Format
		if codec == "" {
			codec = "Audio"
		}
		lang := t.Language
		if lang == "" {
			lang = "und"
		}
		kbps := 0
		if br, err := strconv.Atoi(t.BitRate); err == nil {
			kbps = br / 1000
		}
		tracks = append(tracks, AudioTrack{
			Lang:  strings.ToUpper(lang),
			Codec: codec,
			Kbps:  kbps,
		})
	}
	return tracks
}

// extractCRFs pulls crf= values out of the encoder settings string
// ("... / crf=19.0 / ...").
func extractCRFs(out *mediainfoOutput) []string {
	var crfs []string
	for _, t := range out.Media.Track {
		if !strings.EqualFold(t.Type, "Video") || t.EncodedSettings == "" {
			continue
		}
		for _, part := range strings.Split(t.EncodedSettings, " / ") {
			if v, ok := strings.CutPrefix(part, "crf="); ok {
				crfs = append(crfs, v)
			}
		}
	}
	return crfs
}

func sortCRFs(set map[string]bool) []string {
	crfs := make([]string, 0, len(set))
	for c := range set {
		crfs = append(crfs, c)
	}
	sort.Slice(crfs, func(i, j int) bool {
		return crfValue(crfs[i]) > crfValue(crfs[j])
	})
	return crfs
}

func crfValue(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
