// Package render assembles release-post markup from classified batches.
// It owns only the string assembly; classification, ordering, and
// novelty decisions happen upstream and are consumed through
// interfaces.
package render

import (
	"fmt"
	"strings"

	"github.com/xlordnoro/postar/internal/config"
	"github.com/xlordnoro/postar/internal/logging"
	"github.com/xlordnoro/postar/internal/metadata"
	"github.com/xlordnoro/postar/internal/naming"
	"github.com/xlordnoro/postar/internal/order"
	"github.com/xlordnoro/postar/internal/probe"
	"github.com/xlordnoro/postar/internal/scanner"
)

// NoveltyMarker decides and records whether a batch or file is newly
// announced. The renderer asks it per item and never re-decides
// novelty itself.
type NoveltyMarker interface {
	MarkBatch(folder string) (bool, error)
	MarkFile(folder, label, filename string) (bool, error)
}

// MetadataProvider supplies show titles and synopses.
type MetadataProvider interface {
	Lookup(malID string) metadata.Info
}

// MediaProber supplies codec/bitrate facts for encoding tables.
type MediaProber interface {
	ProbeFolder(folder string) probe.Report
}

// BDSeason is one season's pair of quality tiers. Folder720 may be an
// empty batch when no 720p release exists.
type BDSeason struct {
	Folder1080 *scanner.FolderBatch
	Folder720  *scanner.FolderBatch
}

// Request describes one post.
type Request struct {
	BDSeasons      []BDSeason
	NonBD          []*scanner.FolderBatch
	MALIDs         []string
	Colors         []string
	AiringImages   []string
	DonationImages []string
	BDImages       []string // pairs of (1080p, 720p) images per season
	BDToggle       bool
	Grouped        bool // group episodes by series (airing-style posts)
	CRCColumn      bool
}

// Builder renders posts.
type Builder struct {
	cfg     *config.Config
	novelty NoveltyMarker
	meta    MetadataProvider
	prober  MediaProber
	log     *logging.Logger
}

// NewBuilder wires a Builder. A nil logger discards output.
func NewBuilder(cfg *config.Config, novelty NoveltyMarker, meta MetadataProvider, prober MediaProber, log *logging.Logger) *Builder {
	if log == nil {
		log = logging.Nop()
	}
	return &Builder{cfg: cfg, novelty: novelty, meta: meta, prober: prober, log: log}
}

// postContext accumulates output lines. The login-gate shortcode must
// open exactly once across all show blocks, so the opened flag lives
// here and is threaded through every block instead of being a global.
type postContext struct {
	lines         []string
	sectionOpened bool
}

func (p *postContext) add(line string) {
	p.lines = append(p.lines, line)
}

func (p *postContext) openSection() {
	if !p.sectionOpened {
		p.add("[s2If is_user_logged_in()]")
		p.sectionOpened = true
	}
}

var seasonNames = []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth", "tenth"}

func seasonID(index int) string {
	if index < len(seasonNames) {
		return seasonNames[index]
	}
	return fmt.Sprintf("season%d", index+1)
}

// Build renders the full post and returns the markup plus the default
// output filename.
func (b *Builder) Build(req Request) (string, string, error) {
	ctx := &postContext{}

	for i := range req.BDSeasons {
		if req.BDSeasons[i].Folder1080 == nil {
			req.BDSeasons[i].Folder1080 = &scanner.FolderBatch{}
		}
	}

	for idx, season := range req.BDSeasons {
		color := pick(req.Colors, idx)
		malID := pick(req.MALIDs, idx)
		airing := pick(req.AiringImages, idx)
		displayName := SanitizeDisplayName(season.Folder1080.Basename)

		ctx.add(fmt.Sprintf(`<a class="coverImage"><img title="%s" src="%s"></a>`, displayName, airing))
		if err := b.buildSeasonBlock(ctx, season, idx, malID, color, displayName, req); err != nil {
			return "", "", err
		}
	}

	for idx, batch := range req.NonBD {
		color := pick(req.Colors, idx)
		malID := pick(req.MALIDs, idx)
		airing := pick(req.AiringImages, idx)
		displayName := SanitizeDisplayName(batch.Basename)

		ctx.add(fmt.Sprintf(`<a class="coverImage"><img title="%s" src="%s"></a>`, displayName, airing))

		info := b.meta.Lookup(malID)
		ctx.openSection()
		b.buildSynopsisTable(ctx, info, malID, color)
		if err := b.buildQualityTable(ctx, batch, info, color, displayName, req); err != nil {
			return "", "", err
		}
	}

	if ctx.sectionOpened {
		ctx.add("[/s2If]")
	}

	b.buildDonationSection(ctx, req.DonationImages)
	ctx.add(`<script type="text/javascript" src="https://xlordnoro.github.io/playcools_js_code.js"></script>`)

	txtName := "output.txt"
	switch {
	case len(req.BDSeasons) > 0:
		txtName = SafeOutputFilename(req.BDSeasons[0].Folder1080.Basename)
	case len(req.NonBD) > 0:
		txtName = SafeOutputFilename(req.NonBD[0].Basename)
	}

	return strings.Join(ctx.lines, "\n"), txtName, nil
}

func (b *Builder) buildSeasonBlock(ctx *postContext, season BDSeason, idx int, malID, color string, displayName string, req Request) error {
	info := b.meta.Lookup(malID)

	ctx.openSection()
	b.buildSynopsisTable(ctx, info, malID, color)

	if !req.BDToggle {
		return b.buildQualityTable(ctx, season.Folder1080, info, color, displayName, req)
	}

	id := seasonID(idx)
	img1080, img720 := "https://imgur.com/Ho3EZDh.jpg", "https://imgur.com/BI8chCK.jpg"
	if len(req.BDImages) > idx*2 {
		img1080 = req.BDImages[idx*2]
	}
	if len(req.BDImages) > idx*2+1 {
		img720 = req.BDImages[idx*2+1]
	}

	ctx.add(`<div style="width: 100%; text-align: center;">`)
	ctx.add(fmt.Sprintf(`<div style="margin: 0px 0px 25px 0px; display: inline-flex;">`+
		`<a id="%[1]s_season_bd1080" href="#"><img id="%[1]s_season_bd1080on" src="%[2]s" alt="BD 1080p" style="width:50%%;"></a>`+
		`<a id="%[1]s_season_bd720" href="#"><img id="%[1]s_season_bd720on" src="%[3]s" alt="BD 720p" style="width:50%%;"></a>`+
		`</div></div>`, id, img1080, img720))

	ctx.add(fmt.Sprintf(`<div id="%s_season_bd1080pane">`, id))
	if err := b.buildQualityTable(ctx, season.Folder1080, info, color, displayName, req); err != nil {
		return err
	}
	ctx.add("</div>")

	ctx.add(fmt.Sprintf(`<div id="%s_season_bd720pane">`, id))
	if err := b.buildQualityTable(ctx, season.Folder720, info, color, displayName, req); err != nil {
		return err
	}
	ctx.add("</div>")
	return nil
}

func (b *Builder) buildSynopsisTable(ctx *postContext, info metadata.Info, malID, color string) {
	headerTitle := info.FullTitle
	if info.SeasonInfo != "" {
		headerTitle += fmt.Sprintf(" (%s)", info.SeasonInfo)
	}

	ctx.add(`<table class="kshowSynopsisTable"><thead><tr>`)
	ctx.add(fmt.Sprintf(`<th colspan="1"><span style="color: %[1]s;">`+
		`<a style="color: %[1]s;" href="https://myanimelist.net/anime/%[2]s" target="_blank" rel="noopener noreferrer">`+
		`<strong>%[3]s</strong></a></span> | %[4]s</th></tr></thead>`,
		color, malID, info.ShortTitle, headerTitle))
	ctx.add(fmt.Sprintf(`<tbody><tr><td>%s<!--more--></td></tr></tbody></table>`, info.Synopsis))
}

// buildQualityTable renders one folder's batch torrent table, encoding
// table, and episode link table. Records are ordered here, just before
// rendering, so the table order is always the Ordering Engine's.
func (b *Builder) buildQualityTable(ctx *postContext, batch *scanner.FolderBatch, info metadata.Info, color, displayName string, req Request) error {
	if batch == nil {
		batch = &scanner.FolderBatch{}
	}

	records := make([]naming.MediaRecord, len(batch.Records))
	copy(records, batch.Records)
	mode := order.Flat
	if req.Grouped {
		mode = order.Grouped
	}
	order.Sort(records, mode)

	batchNew, err := b.novelty.MarkBatch(batch.Basename)
	if err != nil {
		return fmt.Errorf("mark batch %s: %w", batch.Basename, err)
	}
	batchSup := ""
	if batchNew {
		batchSup = "<sup>New</sup>"
	}

	title := displayName
	if info.ShortTitle != "" {
		title = info.ShortTitle
	}
	torrentURL := TorrentURL(b.cfg.TorrentsBase, batch.Basename)
	links := b.cfg.Links

	ctx.add(`<table class="batchLinksTable">`)
	ctx.add(`    <thead>`)
	ctx.add(fmt.Sprintf(`        <tr><th colspan="5"><span style="color: %s;"><strong>%s Batch Torrent</strong></span></th></tr>`, color, title))
	ctx.add(`    </thead>`)
	ctx.add(`    <tbody>`)
	ctx.add(`        <tr>`)
	ctx.add(`            <th>Quality</th>`)
	ctx.add(`            <th>Size</th>`)
	ctx.add(`            <th>Spaste</th>`)
	ctx.add(`            <th>Ouo.io</th>`)
	ctx.add(`            <th>Fc.lc</th>`)
	ctx.add(`        </tr>`)
	ctx.add(`        <tr>`)
	ctx.add(fmt.Sprintf(`            <td>%s%s</td>`, QualityLabel(batch.Basename), batchSup))
	ctx.add(fmt.Sprintf(`            <td>%s</td>`, TotalSizeGB(batch.TotalSizeBytes)))
	ctx.add(fmt.Sprintf(`            <td><a href="%s%s"><img src="%s"></a></td>`, links.SpastePrefix, torrentURL, links.TorrentImage))
	ctx.add(fmt.Sprintf(`            <td><a href="%s%s"><img src="%s"></a></td>`, links.OuoPrefix, torrentURL, links.TorrentImage))
	ctx.add(fmt.Sprintf(`            <td><a href="%s%s"><img src="%s"></a></td>`, links.FcLcPrefix, torrentURL, links.TorrentImage))
	ctx.add(`        </tr>`)
	ctx.add(`    </tbody>`)
	ctx.add(`</table>`)

	ctx.add(`<p style="text-align:center;">`)
	ctx.add(fmt.Sprintf(`    <button class="button1" title="Click to Show / Hide Links" type="button" onclick="var e=document.getElementById('%s_hidden'); e.style.display=(e.style.display=='none'?'':'none')">%s</button>`, batch.Basename, title))
	ctx.add(`</p>`)
	ctx.add(fmt.Sprintf(`<div id="%s_hidden" style="display:none; align:center">`, batch.Basename))

	if batch.Exists() {
		b.buildEncodingTable(ctx, batch, displayName, color)
	}

	ctx.add(`    <table class="showLinksTable">`)
	ctx.add(`        <thead>`)
	ctx.add(fmt.Sprintf(`            <tr><th colspan="6"><span style="color: %s;"><strong>%s</strong></span></th></tr>`, color, title))
	ctx.add(`        </thead>`)
	ctx.add(`        <thead>`)
	ctx.add(`            <tr>`)
	ctx.add(`                <th>Episode</th>`)
	ctx.add(`                <th>Size</th>`)
	if req.CRCColumn {
		ctx.add(`                <th>CRC32</th>`)
	}
	ctx.add(`                <th>Spaste</th>`)
	ctx.add(`                <th>Ouo.io</th>`)
	ctx.add(`                <th>Fc.lc</th>`)
	ctx.add(`            </tr>`)
	ctx.add(`        </thead>`)
	ctx.add(`        <tbody>`)

	for _, rec := range records {
		isNew, err := b.novelty.MarkFile(batch.Basename, rec.Label, rec.Filename)
		if err != nil {
			return fmt.Errorf("mark file %s: %w", rec.Filename, err)
		}
		label := rec.Label
		if isNew {
			label += "<sup>New</sup>"
		}
		fileURL := ShowFileURL(b.cfg.ShowsBase, batch.Basename, rec.Filename)

		ctx.add(`            <tr>`)
		ctx.add(fmt.Sprintf(`                <td>%s</td>`, label))
		ctx.add(fmt.Sprintf(`                <td>%s</td>`, HumanSize(rec.SizeBytes)))
		if req.CRCColumn {
			ctx.add(fmt.Sprintf(`                <td>%s</td>`, rec.CRC32))
		}
		ctx.add(fmt.Sprintf(`                <td><a href="%s%s"><img src="%s"></a></td>`, links.SpastePrefix, fileURL, links.DDLImage))
		ctx.add(fmt.Sprintf(`                <td><a href="%s%s"><img src="%s"></a></td>`, links.OuoPrefix, fileURL, links.DDLImage))
		ctx.add(fmt.Sprintf(`                <td><a href="%s%s"><img src="%s"></a></td>`, links.FcLcPrefix, fileURL, links.DDLImage))
		ctx.add(`            </tr>`)
	}

	ctx.add(`        </tbody>`)
	ctx.add(`    </table>`)
	ctx.add(`</div>`)
	return nil
}

// buildEncodingTable renders the Source/Video/Audio facts table above
// the episode links.
func (b *Builder) buildEncodingTable(ctx *postContext, batch *scanner.FolderBatch, displayName, color string) {
	report := b.prober.ProbeFolder(batch.Path)

	var mkvNames []string
	for _, rec := range batch.Records {
		if strings.EqualFold(ext(rec.Filename), ".mkv") {
			mkvNames = append(mkvNames, rec.Filename)
		}
	}
	subgroups := ExtractSubgroups(mkvNames)

	videoStr := strings.ReplaceAll(report.Video, "HEVC", "x265")
	if len(report.CRFs) > 0 {
		videoStr += " @ crf " + strings.Join(report.CRFs, " | ")
	}

	audioLabel := "Single Audio"
	audioStr := "Unknown"
	if len(report.Audio) > 0 {
		if len(report.Audio) > 1 {
			audioLabel = "Dual Audio"
		}
		var entries []string
		for _, t := range report.Audio {
			kbps := "~? kbps"
			if t.Kbps > 0 {
				kbps = fmt.Sprintf("%d kbps", t.Kbps)
			}
			entries = append(entries, fmt.Sprintf("%s %s @ %s", t.Lang, t.Codec, kbps))
		}
		audioStr = fmt.Sprintf("%s via %s", audioLabel, strings.Join(entries, " | "))
	}

	titleExtra := fmt.Sprintf("%s, %s", QualityLabel(batch.Basename), audioLabel)
	sourceStr := fmt.Sprintf("%s from %s", b.cfg.EncoderName, subgroups)

	ctx.add(`<table class="showInfoTable">`)
	ctx.add(`<thead>`)
	ctx.add(`<tr>`)
	ctx.add(fmt.Sprintf(`<th colspan="2"><span style="color:%s;"><strong>Encoding Settings - %s [%s]</strong></span></th>`, color, displayName, titleExtra))
	ctx.add(`</tr>`)
	ctx.add(`</thead>`)
	ctx.add(`<tbody>`)
	ctx.add(fmt.Sprintf(`<tr><td>Source</td><td>%s</td></tr>`, sourceStr))
	ctx.add(fmt.Sprintf(`<tr><td>Video</td><td>%s</td></tr>`, videoStr))
	ctx.add(fmt.Sprintf(`<tr><td>Audio</td><td>%s</td></tr>`, audioStr))
	ctx.add(`</tbody>`)
	ctx.add(`</table>`)
}

func (b *Builder) buildDonationSection(ctx *postContext, imgs []string) {
	if len(imgs) == 0 {
		return
	}

	ctx.add(fmt.Sprintf(`<a class="donateImage" href="https://hi10anime.com/?page_id=70"><img src="%s" alt="Please Donate" title="Please Donate"></a>`, imgs[0]))
	if len(imgs) == 1 {
		return
	}

	const donateID = "Donate_Global"
	ctx.add(fmt.Sprintf(`<p style="text-align: center;"><button title="Click to show / hide Donate Banners" type="button" `+
		`onclick="if(document.getElementById('%[1]s').style.display=='none') `+
		`{document.getElementById('%[1]s').style.display=''} `+
		`else{document.getElementById('%[1]s').style.display='none'}">`+
		`Donate</button></p>`, donateID))
	ctx.add(fmt.Sprintf(`<div id="%s" style="display:none; align:center">`, donateID))
	for _, img := range imgs[1:] {
		ctx.add(fmt.Sprintf(`<a class="donateImage" href="https://hi10anime.com/?page_id=70"><img src="%s" alt="Please Donate" title="Please Donate"></a>`, img))
	}
	ctx.add(`</div>`)
}

func pick(list []string, idx int) string {
	if len(list) == 0 {
		return ""
	}
	if idx < len(list) {
		return list[idx]
	}
	return list[idx%len(list)]
}

func ext(name string) string {
	if i := strings.LastIndexByte(name, '.'); i != -1 {
		return name[i:]
	}
	return ""
}
